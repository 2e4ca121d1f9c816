// Package seed carries the embedded starter dataset for the players table.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/ekaraca/vspecs/internal/model"
)

//go:embed players.json
var playersJSON []byte

// Players decodes the embedded dataset. The file is part of the binary, so a
// decode failure is a build defect, not a runtime condition — but it still
// returns an error rather than panicking, since it's called from a handler.
func Players() ([]model.Player, error) {
	var players []model.Player
	if err := json.Unmarshal(playersJSON, &players); err != nil {
		return nil, fmt.Errorf("seed: decoding embedded players dataset: %w", err)
	}
	return players, nil
}
