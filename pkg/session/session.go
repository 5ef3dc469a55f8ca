// Package session coordinates the remote gateway and the local state store:
// every CRUD action goes remote first and mutates the store only on success,
// with the cascade applied on the delete path. There is no retry, no
// rollback, and no optimistic mutation.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/garagectl/garagectl/internal/state"
	"github.com/garagectl/garagectl/pkg/catalog"
	"github.com/garagectl/garagectl/pkg/client"
)

// Status messages, verbatim from the original client. Each new message
// replaces the previous one; nothing structured is retained.
const (
	StatusGetError       = "Get error!"
	StatusLoginOK        = "Successfully logged in!"
	StatusLoginError     = "Login error!"
	StatusRegisterError  = "Registration error!"
	StatusUpdatedSegment = "Updated in segment!"
	StatusDeletedSegment = "Deleted in segment!"
	StatusUpdatedBrand   = "Updated in brand!"
	StatusDeletedBrand   = "Deleted in brand!"
	StatusUpdatedVehicle = "Updated in vehicle!"
	StatusDeletedVehicle = "Deleted in vehicle!"
)

// Session owns one client-side view of the catalog for the lifetime of a
// command (or a browse screen) and mediates all operations against it.
type Session struct {
	client client.CatalogClient
	store  state.Store
	log    *slog.Logger

	mu     sync.Mutex
	status string
}

// New creates a session over the given gateway and store.
func New(c client.CatalogClient, s state.Store) *Session {
	return &Session{
		client: c,
		store:  s,
		log:    slog.Default(),
	}
}

// Snapshot returns a copy of the current state tree.
func (s *Session) Snapshot() state.Snapshot {
	return s.store.Snapshot()
}

// Status returns the most recent status message.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) setStatus(msg string) {
	s.mu.Lock()
	s.status = msg
	s.mu.Unlock()
}

// Login obtains a token for the credentials. The token is returned, not
// stored; credential persistence is the caller's concern.
func (s *Session) Login(username, password string) (string, error) {
	token, err := s.client.Login(username, password)
	if err != nil {
		s.setStatus(StatusLoginError)
		return "", err
	}
	s.setStatus(StatusLoginOK)
	return token, nil
}

// Register creates an account and, on success, immediately logs in with the
// same credentials.
func (s *Session) Register(username, password string) (string, error) {
	if _, err := s.client.Register(username, password); err != nil {
		s.setStatus(StatusRegisterError)
		return "", err
	}
	return s.Login(username, password)
}

// Profile returns the authenticated user.
func (s *Session) Profile() (*catalog.Profile, error) {
	return s.client.Profile()
}

// LoadSegments fetches the segment list and replaces the collection. On
// failure the collection keeps its previous value.
func (s *Session) LoadSegments() error {
	segments, err := s.client.ListSegments()
	if err != nil {
		s.setStatus(StatusGetError)
		return err
	}
	s.store.ReplaceAllSegments(segments)
	s.log.Debug("loaded segments", "count", len(segments))
	return nil
}

// LoadBrands fetches the brand list and replaces the collection.
func (s *Session) LoadBrands() error {
	brands, err := s.client.ListBrands()
	if err != nil {
		s.setStatus(StatusGetError)
		return err
	}
	s.store.ReplaceAllBrands(brands)
	s.log.Debug("loaded brands", "count", len(brands))
	return nil
}

// LoadVehicles fetches the vehicle list and replaces the collection.
func (s *Session) LoadVehicles() error {
	vehicles, err := s.client.ListVehicles()
	if err != nil {
		s.setStatus(StatusGetError)
		return err
	}
	s.store.ReplaceAllVehicles(vehicles)
	s.log.Debug("loaded vehicles", "count", len(vehicles))
	return nil
}

// LoadAll fetches all three collections the way the main screen mounts its
// panels: each fetch is independent, and a failed one leaves its collection
// untouched while the others still load.
func (s *Session) LoadAll() error {
	return errors.Join(s.LoadSegments(), s.LoadBrands(), s.LoadVehicles())
}

// EditSegment loads a record into the segment draft verbatim.
func (s *Session) EditSegment(seg catalog.Segment) {
	s.store.SetSegmentDraft(seg)
}

// EditBrand loads a record into the brand draft verbatim.
func (s *Session) EditBrand(b catalog.Brand) {
	s.store.SetBrandDraft(b)
}

// EditVehicle loads a record into the vehicle draft verbatim.
func (s *Session) EditVehicle(v catalog.Vehicle) {
	s.store.SetVehicleDraft(v)
}

// SubmitSegment submits the segment draft: create when the draft is unsaved,
// update otherwise. The draft resets to its zero value after the attempt
// whether or not the remote call succeeded.
func (s *Session) SubmitSegment() (*catalog.Segment, error) {
	draft := s.store.Snapshot().SegmentDraft
	mode := catalog.DraftModeOf(draft.ID)
	defer s.store.SetSegmentDraft(catalog.EmptySegment())

	if !mode.Edit {
		created, err := s.client.CreateSegment(draft.Name)
		if err != nil {
			return nil, err
		}
		s.store.AppendSegment(*created)
		return created, nil
	}

	updated, err := s.client.UpdateSegment(draft)
	if err != nil {
		return nil, err
	}
	s.store.ReplaceSegment(*updated)
	s.setStatus(StatusUpdatedSegment)
	return updated, nil
}

// SubmitBrand submits the brand draft.
func (s *Session) SubmitBrand() (*catalog.Brand, error) {
	draft := s.store.Snapshot().BrandDraft
	mode := catalog.DraftModeOf(draft.ID)
	defer s.store.SetBrandDraft(catalog.EmptyBrand())

	if !mode.Edit {
		created, err := s.client.CreateBrand(draft.Name)
		if err != nil {
			return nil, err
		}
		s.store.AppendBrand(*created)
		return created, nil
	}

	updated, err := s.client.UpdateBrand(draft)
	if err != nil {
		return nil, err
	}
	s.store.ReplaceBrand(*updated)
	s.setStatus(StatusUpdatedBrand)
	return updated, nil
}

// SubmitVehicle submits the vehicle draft.
func (s *Session) SubmitVehicle() (*catalog.Vehicle, error) {
	draft := s.store.Snapshot().VehicleDraft
	mode := catalog.DraftModeOf(draft.ID)
	defer s.store.SetVehicleDraft(catalog.EmptyVehicle())

	if !mode.Edit {
		created, err := s.client.CreateVehicle(draft)
		if err != nil {
			return nil, err
		}
		s.store.AppendVehicle(*created)
		return created, nil
	}

	updated, err := s.client.UpdateVehicle(draft)
	if err != nil {
		return nil, err
	}
	s.store.ReplaceVehicle(*updated)
	s.setStatus(StatusUpdatedVehicle)
	return updated, nil
}

// DeleteSegment deletes the segment remotely, then removes it and every
// vehicle referencing it from the local view in one transition. Only the
// segment delete is sent to the backend; the vehicle removals are inferred
// from foreign-key equality.
func (s *Session) DeleteSegment(id int) error {
	deleted, err := s.client.DeleteSegment(id)
	if err != nil {
		return err
	}
	s.store.DeleteSegment(deleted)
	s.setStatus(StatusDeletedSegment)
	return nil
}

// DeleteBrand deletes the brand remotely and cascades locally.
func (s *Session) DeleteBrand(id int) error {
	deleted, err := s.client.DeleteBrand(id)
	if err != nil {
		return err
	}
	s.store.DeleteBrand(deleted)
	s.setStatus(StatusDeletedBrand)
	return nil
}

// DeleteVehicle deletes one vehicle. Segments and brands are untouched.
func (s *Session) DeleteVehicle(id int) error {
	deleted, err := s.client.DeleteVehicle(id)
	if err != nil {
		return err
	}
	s.store.DeleteVehicle(deleted)
	s.setStatus(StatusDeletedVehicle)
	return nil
}
