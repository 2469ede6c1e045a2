package ledgers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// FileName is the ledger master path relative to the books root.
var FileName = filepath.Join("ledgers", "ledgers.csv")

// ErrDuplicate is returned when adding a ledger whose name already exists.
var ErrDuplicate = errors.New("ledger already exists")

// Service provides in-memory lookup over the ledger master.
type Service struct {
	ledgers []model.Ledger
	byName  map[string]int
}

// NewService creates a Service from a slice of ledgers. Later duplicates are dropped.
func NewService(ledgers []model.Ledger) *Service {
	s := &Service{byName: make(map[string]int, len(ledgers))}
	for _, l := range ledgers {
		_ = s.add(l)
	}
	return s
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Service) add(l model.Ledger) error {
	k := nameKey(l.Name)
	if _, ok := s.byName[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, l.Name)
	}
	s.byName[k] = len(s.ledgers)
	s.ledgers = append(s.ledgers, l)
	return nil
}

// Load reads ledgers/ledgers.csv from a books root. A missing file yields an
// empty master.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, FileName)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger master: %w", err)
	}
	defer f.Close()

	ls, err := ReadLedgers(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger master: %w", err)
	}
	return NewService(ls), nil
}

// All returns all ledgers in file order.
func (s *Service) All() []model.Ledger {
	return s.ledgers
}

// Get returns a ledger by name, ignoring case and surrounding space.
func (s *Service) Get(name string) (model.Ledger, bool) {
	i, ok := s.byName[nameKey(name)]
	if !ok {
		return model.Ledger{}, false
	}
	return s.ledgers[i], true
}

// Exists reports whether a ledger name is in the master.
func (s *Service) Exists(name string) bool {
	_, ok := s.byName[nameKey(name)]
	return ok
}

// ByGroup returns all ledgers in the given group.
func (s *Service) ByGroup(group model.Group) []model.Ledger {
	var result []model.Ledger
	for _, l := range s.ledgers {
		if l.Group == group {
			result = append(result, l)
		}
	}
	return result
}

// Add appends a ledger. Names must be unique and groups known.
func (s *Service) Add(l model.Ledger) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return errors.New("ledger name is required")
	}
	group, ok := model.ParseGroup(string(l.Group))
	if !ok {
		return fmt.Errorf("unknown group %q", l.Group)
	}
	l.Group = group
	return s.add(l)
}

// Save writes the master to ledgers/ledgers.csv under root.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledgers dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger master file: %w", err)
	}
	defer f.Close()

	if err := WriteLedgers(f, s.ledgers); err != nil {
		return fmt.Errorf("writing ledger master: %w", err)
	}
	return nil
}
