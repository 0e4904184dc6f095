package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/section"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrInvalidColor   = errors.New("invalid color")
)

type DraftStore interface {
	Save(p domain.Profile) error
	Load() (domain.Profile, bool)
}

type RegistryStore interface {
	Upsert(p domain.Portfolio) error
	List() []domain.Portfolio
	Find(email string) (domain.Portfolio, error)
}

type PhotoImporter interface {
	Import(src, dir string) (string, error)
}

// Snapshot is the collected state handed to the generation pipeline.
type Snapshot struct {
	Profile domain.Profile
	Design  domain.Design
}

// DraftView is the editable state as shown by the front ends.
type DraftView struct {
	Profile  domain.Profile             `json:"profile"`
	Sections map[string][]section.Entry `json:"sections"`
	Design   domain.Design              `json:"design"`
}

// Session is the wizard state shared by every screen and HTTP handler.
type Session struct {
	mu sync.Mutex

	drafts    DraftStore
	registry  RegistryStore
	photos    PhotoImporter
	uploadDir string
	log       *slog.Logger
	now       func() time.Time

	profile  domain.Profile
	sections map[string]*section.Model
	design   domain.Design
	last     *Result
}

// NewSession restores the last saved draft, if any.
func NewSession(drafts DraftStore, registry RegistryStore, photos PhotoImporter, uploadDir string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		drafts:    drafts,
		registry:  registry,
		photos:    photos,
		uploadDir: uploadDir,
		log:       logger,
		now:       time.Now,
	}
	s.reset()
	if p, ok := drafts.Load(); ok {
		s.loadProfile(p)
		s.log.Info("draft restored", "email", p.Email)
	}
	return s
}

func (s *Session) reset() {
	s.profile = domain.Profile{}
	s.sections = map[string]*section.Model{}
	for _, k := range section.Kinds {
		s.sections[k.Name] = section.New(k)
	}
	s.design = domain.DefaultDesign()
	s.last = nil
}

func (s *Session) loadProfile(p domain.Profile) {
	s.profile = p
	s.sections[section.Education.Name].FromList(p.EducationRecords())
	s.sections[section.Experience.Name].FromList(p.ExperienceRecords())
}

// Reset starts a fresh portfolio. The draft document is left untouched until
// the next Advance.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) section(kind string) (*section.Model, error) {
	m, ok := s.sections[kind]
	if !ok {
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownSection)
	}
	return m, nil
}

func (s *Session) Draft() DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := DraftView{
		Profile:  s.profile,
		Sections: map[string][]section.Entry{},
		Design:   s.design,
	}
	for name, m := range s.sections {
		v.Sections[name] = m.Entries()
	}
	return v
}

func (s *Session) Field(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Field(key)
}

func (s *Session) SetField(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.SetField(key, value)
}

// SetFields assigns several fields. Nothing is changed when any key is
// unknown.
func (s *Session) SetFields(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	for k, v := range values {
		if err := p.SetField(k, v); err != nil {
			return err
		}
	}
	s.profile = p
	return nil
}

func (s *Session) AddEntry(kind string) (section.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.section(kind)
	if err != nil {
		return "", err
	}
	return m.Add(), nil
}

func (s *Session) RemoveEntry(kind string, id section.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.section(kind)
	if err != nil {
		return err
	}
	m.Remove(id)
	return nil
}

func (s *Session) SetEntryField(kind string, id section.ID, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.section(kind)
	if err != nil {
		return err
	}
	return m.Set(id, field, value)
}

// SetEntryFields applies values to one entry, all or nothing.
func (s *Session) SetEntryFields(kind string, id section.ID, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.section(kind)
	if err != nil {
		return err
	}
	return m.SetAll(id, values)
}

func (s *Session) Entries(kind string) ([]section.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.section(kind)
	if err != nil {
		return nil, err
	}
	return m.Entries(), nil
}

// SetPhoto copies the picture into the upload directory and selects it. A
// file that is not a readable image is ignored and ok is false.
func (s *Session) SetPhoto(path string) (stored string, ok bool) {
	stored, err := s.photos.Import(path, s.uploadDir)
	if err != nil {
		s.log.Debug("photo ignored", "path", path, "error", err)
		return "", false
	}
	s.mu.Lock()
	s.profile.SetPhoto(stored)
	s.mu.Unlock()
	return stored, true
}

func (s *Session) ClearPhoto() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.SetPhoto("")
}

func (s *Session) collect() domain.Profile {
	p := s.profile
	p.TrimFields()
	p.SetSections(
		s.sections[section.Education.Name].ToList(true),
		s.sections[section.Experience.Name].ToList(true),
	)
	p.DeriveSkills()
	return p
}

// Advance collects the form into the draft and writes the draft document.
// The in-memory draft is updated even when the write fails.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advance()
}

func (s *Session) advance() error {
	s.profile = s.collect()
	if err := s.drafts.Save(s.profile); err != nil {
		s.log.Error("failed to save draft", "error", err)
		return fmt.Errorf("save draft: %w", err)
	}
	s.log.Info("draft saved", "email", s.profile.Email,
		"education", len(s.profile.Education), "experience", len(s.profile.Experience))
	return nil
}

func (s *Session) Design() domain.Design {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.design
}

// SetDesign accepts hex colors with or without "#". On error the design is
// unchanged.
func (s *Session) SetDesign(primary, secondary string) error {
	p, err := domain.NormalizeColor(primary)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	sec, err := domain.NormalizeColor(secondary)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	s.mu.Lock()
	s.design = domain.Design{Primary: p, Secondary: sec}
	s.mu.Unlock()
	return nil
}

// Finalize collects the draft, stamps it and upserts it into the registry
// under its email.
func (s *Session) Finalize() (domain.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.advance(); err != nil {
		s.log.Warn("continuing without draft document", "error", err)
	}
	entry := domain.Portfolio{
		Profile:   s.profile,
		CreatedAt: s.now().Format(domain.CreatedAtLayout),
		Design:    s.design,
	}
	if err := s.registry.Upsert(entry); err != nil {
		return domain.Portfolio{}, fmt.Errorf("register portfolio: %w", err)
	}
	return entry, nil
}

// Snapshot returns the collected draft and design without writing anything.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Profile: s.collect(), Design: s.design}
}

// LoadEntry copies a registry entry back into the draft and design.
func (s *Session) LoadEntry(p domain.Portfolio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.loadProfile(p.Profile)
	s.design = p.Design.WithDefaults()
	if err := s.drafts.Save(s.profile); err != nil {
		s.log.Error("failed to save draft", "error", err)
	}
	s.log.Info("portfolio loaded", "email", p.Email)
}

// LoadPortfolio loads the registry entry for email.
func (s *Session) LoadPortfolio(email string) (domain.Portfolio, error) {
	p, err := s.registry.Find(email)
	if err != nil {
		return domain.Portfolio{}, err
	}
	s.LoadEntry(p)
	return p, nil
}

func (s *Session) Portfolios() []domain.Portfolio {
	return s.registry.List()
}

func (s *Session) SetLastResult(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &r
}

// LastResult returns the artifacts of the last successful generation.
func (s *Session) LastResult() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}
