package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// LectureIcon is the PrimeIcons class the frontend renders for lecture entries.
const LectureIcon = "pi pi-fw pi-bookmark"

// MenuService edits the navigation menu document kept in a JSON file.
// Each edit reads, modifies and atomically replaces the file under a mutex,
// so concurrent requests in one process cannot lose updates.
type MenuService struct {
	Path string

	mu sync.Mutex
}

// Menu returns the current menu. A missing file is an empty menu.
func (s *MenuService) Menu(ctx context.Context) (domain.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// AddSubject appends an empty subject.
func (s *MenuService) AddSubject(ctx context.Context, label string) (domain.Menu, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Menu{}, fmt.Errorf("%w: subject label is required", ErrInvalidMenuLabel)
	}

	return s.update(ctx, func(m *domain.Menu) error {
		if findSubject(m, label) != nil {
			return ErrMenuDuplicate
		}
		m.Items = append(m.Items, domain.MenuSubject{Label: label, Items: []domain.MenuLecture{}})
		return nil
	})
}

// AddLecture appends a lecture entry under an existing subject.
func (s *MenuService) AddLecture(ctx context.Context, subject, label string) (domain.Menu, error) {
	subject = strings.TrimSpace(subject)
	label = strings.TrimSpace(label)
	if subject == "" || label == "" {
		return domain.Menu{}, fmt.Errorf("%w: subject and lecture label are required", ErrInvalidMenuLabel)
	}

	return s.update(ctx, func(m *domain.Menu) error {
		subj := findSubject(m, subject)
		if subj == nil {
			return ErrMenuSubjectNotFound
		}
		for _, lec := range subj.Items {
			if lec.Label == label {
				return ErrMenuDuplicate
			}
		}
		subj.Items = append(subj.Items, domain.MenuLecture{
			Label: label,
			Icon:  LectureIcon,
			To:    LectureRoute(subject, label),
		})
		return nil
	})
}

// LectureRoute is the frontend route of a lecture page.
func LectureRoute(subject, lecture string) string {
	return "/lectures/" + subject + "/" + lecture
}

func findSubject(m *domain.Menu, label string) *domain.MenuSubject {
	for i := range m.Items {
		if m.Items[i].Label == label {
			return &m.Items[i]
		}
	}
	return nil
}

func (s *MenuService) update(ctx context.Context, fn func(*domain.Menu) error) (domain.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.Menu{}, err
	}
	if err := fn(&m); err != nil {
		return domain.Menu{}, err
	}
	if err := s.save(m); err != nil {
		slogx.FromContext(ctx).Error("failed to write menu", slog.String("path", s.Path), slog.Any("error", err))
		return domain.Menu{}, err
	}
	return m, nil
}

func (s *MenuService) load() (domain.Menu, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Menu{Items: []domain.MenuSubject{}}, nil
	}
	if err != nil {
		return domain.Menu{}, fmt.Errorf("menu: read: %w", err)
	}

	var m domain.Menu
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.Menu{}, fmt.Errorf("menu: decode %s: %w", s.Path, err)
	}
	if m.Items == nil {
		m.Items = []domain.MenuSubject{}
	}
	for i := range m.Items {
		if m.Items[i].Items == nil {
			m.Items[i].Items = []domain.MenuLecture{}
		}
	}
	return m, nil
}

// save writes to a temp file in the same directory and renames it over the
// menu, so readers never observe a partial document.
func (s *MenuService) save(m domain.Menu) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("menu: encode: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".menu-*.json")
	if err != nil {
		return fmt.Errorf("menu: temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("menu: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("menu: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("menu: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("menu: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("menu: replace: %w", err)
	}
	return nil
}
