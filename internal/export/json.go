package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/leadgrid/dealerxref/internal/model"
)

// WriteJSON writes entities as an indented JSON array.
func WriteJSON(entities []model.CanonicalEntity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create json %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entities); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}
