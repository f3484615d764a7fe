// Package plan manages the planning files kept next to the ledgers: the
// recurring bill schedule and the savings goals. Both are small YAML
// documents, and a missing file reads as empty.
package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Store reads and writes the planning files under one data directory.
type Store struct {
	dir string
}

// NewStore returns a store over dataDir.
func NewStore(dataDir string) *Store {
	return &Store{dir: dataDir}
}

// File names under the data directory.
const (
	BillsFile = "bills.yaml"
	GoalsFile = "goals.yaml"
)

// BillsPath returns the path of the bill schedule file.
func (s *Store) BillsPath() string { return filepath.Join(s.dir, BillsFile) }

// GoalsPath returns the path of the savings goals file.
func (s *Store) GoalsPath() string { return filepath.Join(s.dir, GoalsFile) }

type billDoc struct {
	Bills []billRow `yaml:"bills"`
}

type billRow struct {
	Name   string `yaml:"name"`
	Amount string `yaml:"amount"`
	DueDay int    `yaml:"due_day"`
}

type goalDoc struct {
	Goals []goalRow `yaml:"goals"`
}

type goalRow struct {
	Name     string `yaml:"name"`
	Target   string `yaml:"target"`
	Deadline string `yaml:"deadline,omitempty"`
	Keyword  string `yaml:"keyword,omitempty"`
}

// LoadBills reads the bill schedule. A missing file is an empty schedule.
func (s *Store) LoadBills() ([]Bill, error) {
	data, err := os.ReadFile(s.BillsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading bill schedule: %w", err)
	}

	var doc billDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.BillsPath(), err)
	}

	bills := make([]Bill, 0, len(doc.Bills))
	for _, r := range doc.Bills {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: bill %q amount %q: %w", s.BillsPath(), r.Name, r.Amount, err)
		}
		bills = append(bills, Bill{Name: r.Name, Amount: amount, DueDay: r.DueDay})
	}
	logging.Log.WithField("bills", len(bills)).Debug("loaded bill schedule")
	return bills, nil
}

// SaveBills writes the whole schedule back.
func (s *Store) SaveBills(bills []Bill) error {
	for _, b := range bills {
		if err := b.Validate(); err != nil {
			return err
		}
	}

	doc := billDoc{Bills: make([]billRow, 0, len(bills))}
	for _, b := range bills {
		doc.Bills = append(doc.Bills, billRow{
			Name:   b.Name,
			Amount: b.Amount.StringFixed(2),
			DueDay: b.DueDay,
		})
	}
	return s.writeDoc(s.BillsPath(), doc)
}

// AddBill appends a bill to the schedule, rejecting duplicate names.
func (s *Store) AddBill(b Bill) error {
	if err := b.Validate(); err != nil {
		return err
	}
	bills, err := s.LoadBills()
	if err != nil {
		return err
	}
	for _, existing := range bills {
		if strings.EqualFold(existing.Name, b.Name) {
			return fmt.Errorf("bill %q already exists", existing.Name)
		}
	}
	return s.SaveBills(append(bills, b))
}

// RemoveBill deletes a bill from the schedule by name, case-insensitively.
func (s *Store) RemoveBill(name string) error {
	bills, err := s.LoadBills()
	if err != nil {
		return err
	}
	kept := bills[:0]
	for _, b := range bills {
		if !strings.EqualFold(b.Name, name) {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bills) {
		return fmt.Errorf("no bill named %q", name)
	}
	return s.SaveBills(kept)
}

// LoadGoals reads the savings goals. A missing file means no goals.
func (s *Store) LoadGoals() ([]Goal, error) {
	data, err := os.ReadFile(s.GoalsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading goals: %w", err)
	}

	var doc goalDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.GoalsPath(), err)
	}

	goals := make([]Goal, 0, len(doc.Goals))
	for _, r := range doc.Goals {
		target, err := decimal.NewFromString(r.Target)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: goal %q target %q: %w", s.GoalsPath(), r.Name, r.Target, err)
		}
		g := Goal{Name: r.Name, Target: target, Keyword: r.Keyword}
		if r.Deadline != "" {
			deadline, err := model.ParseDate(r.Deadline)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: goal %q deadline %q: %w", s.GoalsPath(), r.Name, r.Deadline, err)
			}
			g.Deadline = deadline
		}
		goals = append(goals, g)
	}
	logging.Log.WithField("goals", len(goals)).Debug("loaded savings goals")
	return goals, nil
}

// SaveGoals writes the whole goal list back.
func (s *Store) SaveGoals(goals []Goal) error {
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			return err
		}
	}

	doc := goalDoc{Goals: make([]goalRow, 0, len(goals))}
	for _, g := range goals {
		doc.Goals = append(doc.Goals, goalRow{
			Name:     g.Name,
			Target:   g.Target.StringFixed(2),
			Deadline: g.Deadline.String(),
			Keyword:  g.Keyword,
		})
	}
	return s.writeDoc(s.GoalsPath(), doc)
}

// AddGoal appends a goal, rejecting duplicate names.
func (s *Store) AddGoal(g Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	goals, err := s.LoadGoals()
	if err != nil {
		return err
	}
	for _, existing := range goals {
		if strings.EqualFold(existing.Name, g.Name) {
			return fmt.Errorf("goal %q already exists", existing.Name)
		}
	}
	return s.SaveGoals(append(goals, g))
}

// RemoveGoal deletes a goal by name, case-insensitively.
func (s *Store) RemoveGoal(name string) error {
	goals, err := s.LoadGoals()
	if err != nil {
		return err
	}
	kept := goals[:0]
	for _, g := range goals {
		if !strings.EqualFold(g.Name, name) {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return fmt.Errorf("no goal named %q", name)
	}
	return s.SaveGoals(kept)
}

func (s *Store) writeDoc(path string, doc any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
