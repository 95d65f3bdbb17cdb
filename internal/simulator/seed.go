package simulator

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Seed lists tournaments to create when the simulator boots.
type Seed struct {
	Tournaments []SeedTournament `yaml:"tournaments"`
}

type SeedTournament struct {
	CreateRequest `yaml:",inline"`
	Players       []string `yaml:"players"`
	Bots          int      `yaml:"bots"`
	Start         bool     `yaml:"start"`
}

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// ApplySeed creates every seeded tournament, registers its players and bots
// and starts it when asked. It returns the ids created, in seed order.
func (s *Service) ApplySeed(seed *Seed) ([]string, error) {
	ids := make([]string, 0, len(seed.Tournaments))
	for i, st := range seed.Tournaments {
		t, err := s.CreateTournament(st.CreateRequest)
		if err != nil {
			return ids, fmt.Errorf("seed tournament %d (%q): %w", i, st.Name, err)
		}
		ids = append(ids, t.ID)

		for _, name := range st.Players {
			if _, err := s.RegisterPlayer(t.ID, name); err != nil {
				return ids, fmt.Errorf("seed tournament %q: register %q: %w", st.Name, name, err)
			}
		}
		if st.Bots > 0 {
			if _, err := s.AddBots(t.ID, st.Bots); err != nil {
				return ids, fmt.Errorf("seed tournament %q: bots: %w", st.Name, err)
			}
		}
		if st.Start {
			if _, err := s.StartTournament(t.ID); err != nil {
				return ids, fmt.Errorf("seed tournament %q: start: %w", st.Name, err)
			}
		}
		log.Info().Str("tournament_id", t.ID).Str("name", st.Name).Msg("seed tournament ready")
	}
	return ids, nil
}
