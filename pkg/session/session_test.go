package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagectl/garagectl/internal/state"
	"github.com/garagectl/garagectl/pkg/catalog"
	"github.com/garagectl/garagectl/pkg/client"
)

// fakeClient is an in-process CatalogClient with per-operation failure
// switches. Server-assigned ids start at 100 so they never collide with
// fixture ids.
type fakeClient struct {
	segments []catalog.Segment
	brands   []catalog.Brand
	vehicles []catalog.Vehicle

	failList   bool
	failCreate bool
	failUpdate bool
	failDelete bool
	failLogin  bool

	nextID        int
	loginCalls    int
	registerCalls int
}

func newFakeClient() *fakeClient {
	return &fakeClient{nextID: 100}
}

func (f *fakeClient) opErr(kind client.OpKind, scope string) error {
	return &client.OpError{Kind: kind, Scope: scope, Err: &client.APIError{StatusCode: 500, Message: "boom"}}
}

func (f *fakeClient) Login(username, password string) (string, error) {
	f.loginCalls++
	if f.failLogin {
		return "", f.opErr(client.CreateFailed, client.ScopeLogin)
	}
	return "tok-" + username, nil
}

func (f *fakeClient) Register(username, password string) (*catalog.Profile, error) {
	f.registerCalls++
	if f.failCreate {
		return nil, f.opErr(client.CreateFailed, client.ScopeRegistration)
	}
	return &catalog.Profile{ID: 1, Username: username}, nil
}

func (f *fakeClient) Profile() (*catalog.Profile, error) {
	return &catalog.Profile{ID: 1, Username: "alice"}, nil
}

func (f *fakeClient) ListSegments() ([]catalog.Segment, error) {
	if f.failList {
		return nil, f.opErr(client.FetchFailed, string(catalog.KindSegment))
	}
	return f.segments, nil
}

func (f *fakeClient) CreateSegment(name string) (*catalog.Segment, error) {
	if f.failCreate {
		return nil, f.opErr(client.CreateFailed, string(catalog.KindSegment))
	}
	created := catalog.Segment{ID: f.nextID, Name: name}
	f.nextID++
	return &created, nil
}

func (f *fakeClient) UpdateSegment(seg catalog.Segment) (*catalog.Segment, error) {
	if f.failUpdate {
		return nil, f.opErr(client.UpdateFailed, string(catalog.KindSegment))
	}
	return &seg, nil
}

func (f *fakeClient) DeleteSegment(id int) (int, error) {
	if f.failDelete {
		return 0, f.opErr(client.DeleteFailed, string(catalog.KindSegment))
	}
	return id, nil
}

func (f *fakeClient) ListBrands() ([]catalog.Brand, error) {
	if f.failList {
		return nil, f.opErr(client.FetchFailed, string(catalog.KindBrand))
	}
	return f.brands, nil
}

func (f *fakeClient) CreateBrand(name string) (*catalog.Brand, error) {
	if f.failCreate {
		return nil, f.opErr(client.CreateFailed, string(catalog.KindBrand))
	}
	created := catalog.Brand{ID: f.nextID, Name: name}
	f.nextID++
	return &created, nil
}

func (f *fakeClient) UpdateBrand(b catalog.Brand) (*catalog.Brand, error) {
	if f.failUpdate {
		return nil, f.opErr(client.UpdateFailed, string(catalog.KindBrand))
	}
	return &b, nil
}

func (f *fakeClient) DeleteBrand(id int) (int, error) {
	if f.failDelete {
		return 0, f.opErr(client.DeleteFailed, string(catalog.KindBrand))
	}
	return id, nil
}

func (f *fakeClient) ListVehicles() ([]catalog.Vehicle, error) {
	if f.failList {
		return nil, f.opErr(client.FetchFailed, string(catalog.KindVehicle))
	}
	return f.vehicles, nil
}

func (f *fakeClient) CreateVehicle(v catalog.Vehicle) (*catalog.Vehicle, error) {
	if f.failCreate {
		return nil, f.opErr(client.CreateFailed, string(catalog.KindVehicle))
	}
	v.ID = f.nextID
	f.nextID++
	return &v, nil
}

func (f *fakeClient) UpdateVehicle(v catalog.Vehicle) (*catalog.Vehicle, error) {
	if f.failUpdate {
		return nil, f.opErr(client.UpdateFailed, string(catalog.KindVehicle))
	}
	return &v, nil
}

func (f *fakeClient) DeleteVehicle(id int) (int, error) {
	if f.failDelete {
		return 0, f.opErr(client.DeleteFailed, string(catalog.KindVehicle))
	}
	return id, nil
}

var _ client.CatalogClient = (*fakeClient)(nil)

func newTestSession(f *fakeClient) *Session {
	return New(f, state.NewMemoryStore())
}

func TestLogin(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)

	token, err := sess.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-alice", token)
	assert.Equal(t, StatusLoginOK, sess.Status())
}

func TestLogin_Failure(t *testing.T) {
	f := newFakeClient()
	f.failLogin = true
	sess := newTestSession(f)

	_, err := sess.Login("alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, StatusLoginError, sess.Status())
}

func TestRegister_ChainsIntoLogin(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)

	token, err := sess.Register("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-alice", token)
	assert.Equal(t, 1, f.registerCalls)
	assert.Equal(t, 1, f.loginCalls)
	assert.Equal(t, StatusLoginOK, sess.Status())
}

func TestRegister_FailureSkipsLogin(t *testing.T) {
	f := newFakeClient()
	f.failCreate = true
	sess := newTestSession(f)

	_, err := sess.Register("alice", "secret")
	require.Error(t, err)
	assert.Zero(t, f.loginCalls)
	assert.Equal(t, StatusRegisterError, sess.Status())
}

func TestLoadSegments_ReplacesCollection(t *testing.T) {
	f := newFakeClient()
	f.segments = []catalog.Segment{{ID: 1, Name: "SUV"}, {ID: 2, Name: "EV"}}
	sess := newTestSession(f)

	require.NoError(t, sess.LoadSegments())
	assert.Equal(t, f.segments, sess.Snapshot().Segments)
}

func TestLoadSegments_FailureLeavesCollection(t *testing.T) {
	f := newFakeClient()
	f.segments = []catalog.Segment{{ID: 1, Name: "SUV"}}
	sess := newTestSession(f)
	require.NoError(t, sess.LoadSegments())

	f.failList = true
	require.Error(t, sess.LoadSegments())

	// The previously loaded data survives the failed refresh.
	assert.Equal(t, f.segments, sess.Snapshot().Segments)
	assert.Equal(t, StatusGetError, sess.Status())
}

func TestLoadAll_PartialFailureLoadsTheRest(t *testing.T) {
	partial := &partialFailClient{fakeClient: newFakeClient()}
	partial.brands = []catalog.Brand{{ID: 1, Name: "Toyota"}}
	partial.vehicles = []catalog.Vehicle{{ID: 1, Name: "RAV4", Segment: 1, Brand: 1}}
	sess := New(partial, state.NewMemoryStore())

	err := sess.LoadAll()
	require.Error(t, err)

	snap := sess.Snapshot()
	// Segments failed and keep the placeholder; the other two loaded.
	require.Len(t, snap.Segments, 1)
	assert.Equal(t, catalog.SentinelID, snap.Segments[0].ID)
	assert.Equal(t, partial.brands, snap.Brands)
	assert.Equal(t, partial.vehicles, snap.Vehicles)
}

// partialFailClient fails only the segment list.
type partialFailClient struct {
	*fakeClient
}

func (p *partialFailClient) ListSegments() ([]catalog.Segment, error) {
	return nil, p.opErr(client.FetchFailed, string(catalog.KindSegment))
}

func TestSubmitSegment_CreateAppendsAndResetsDraft(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)

	sess.EditSegment(catalog.Segment{Name: "SUV"})
	created, err := sess.SubmitSegment()
	require.NoError(t, err)

	assert.Equal(t, 100, created.ID)
	snap := sess.Snapshot()
	require.Len(t, snap.Segments, 2) // placeholder + created
	assert.Equal(t, "SUV", snap.Segments[1].Name)
	assert.Equal(t, catalog.EmptySegment(), snap.SegmentDraft)
}

func TestSubmitBrand_CreateScenario(t *testing.T) {
	f := newFakeClient()
	f.nextID = 3
	sess := newTestSession(f)
	sess.store.ReplaceAllBrands([]catalog.Brand{{ID: 1, Name: "Toyota"}, {ID: 2, Name: "Nissan"}})

	sess.EditBrand(catalog.Brand{Name: "Audi"})
	created, err := sess.SubmitBrand()
	require.NoError(t, err)

	assert.Equal(t, &catalog.Brand{ID: 3, Name: "Audi"}, created)
	snap := sess.Snapshot()
	require.Len(t, snap.Brands, 3)
	assert.Equal(t, "Audi", snap.Brands[2].Name)
	assert.Equal(t, catalog.EmptyBrand(), snap.BrandDraft)
}

func TestSubmitSegment_UpdateReplacesInPlace(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)
	sess.store.ReplaceAllSegments([]catalog.Segment{
		{ID: 1, Name: "SUV"}, {ID: 2, Name: "EV"}, {ID: 3, Name: "Sedan"},
	})

	sess.EditSegment(catalog.Segment{ID: 2, Name: "Electric"})
	updated, err := sess.SubmitSegment()
	require.NoError(t, err)

	assert.Equal(t, "Electric", updated.Name)
	snap := sess.Snapshot()
	require.Len(t, snap.Segments, 3)
	assert.Equal(t, "Electric", snap.Segments[1].Name)
	assert.Equal(t, StatusUpdatedSegment, sess.Status())
	assert.Equal(t, catalog.EmptySegment(), snap.SegmentDraft)
}

func TestSubmit_UpdateFailureStillResetsDraft(t *testing.T) {
	f := newFakeClient()
	f.failUpdate = true
	sess := newTestSession(f)
	sess.store.ReplaceAllSegments([]catalog.Segment{{ID: 2, Name: "EV"}})

	sess.EditSegment(catalog.Segment{ID: 2, Name: "Electric"})
	_, err := sess.SubmitSegment()
	require.Error(t, err)

	snap := sess.Snapshot()
	// The draft resets after the attempt even though the update failed, and
	// the collection keeps the pre-edit record.
	assert.Equal(t, catalog.EmptySegment(), snap.SegmentDraft)
	assert.Equal(t, "EV", snap.Segments[0].Name)
}

func TestSubmit_CreateFailureLeavesCollection(t *testing.T) {
	f := newFakeClient()
	f.failCreate = true
	sess := newTestSession(f)

	sess.EditBrand(catalog.Brand{Name: "Audi"})
	_, err := sess.SubmitBrand()
	require.Error(t, err)

	snap := sess.Snapshot()
	require.Len(t, snap.Brands, 1) // placeholder only
	assert.Equal(t, catalog.EmptyBrand(), snap.BrandDraft)
}

func TestSubmitVehicle_CreateCarriesDraftFields(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)

	draft := catalog.EmptyVehicle()
	draft.Name = "RAV4"
	draft.ReleaseYear = 2022
	draft.Price = 32000
	draft.Segment = 1
	draft.Brand = 1
	sess.EditVehicle(draft)

	created, err := sess.SubmitVehicle()
	require.NoError(t, err)

	assert.Equal(t, 100, created.ID)
	assert.Equal(t, "RAV4", created.Name)
	assert.Equal(t, 2022, created.ReleaseYear)
	assert.Equal(t, catalog.EmptyVehicle(), sess.Snapshot().VehicleDraft)
}

func TestDeleteSegment_CascadesLocally(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)
	sess.store.ReplaceAllSegments([]catalog.Segment{{ID: 1, Name: "SUV"}, {ID: 2, Name: "EV"}})
	sess.store.ReplaceAllVehicles([]catalog.Vehicle{
		{ID: 1, Name: "RAV4", Segment: 1, Brand: 1},
		{ID: 2, Name: "Leaf", Segment: 2, Brand: 2},
	})

	require.NoError(t, sess.DeleteSegment(2))

	snap := sess.Snapshot()
	require.Len(t, snap.Segments, 1)
	assert.Equal(t, 1, snap.Segments[0].ID)
	require.Len(t, snap.Vehicles, 1)
	assert.Equal(t, "RAV4", snap.Vehicles[0].Name)
	assert.Equal(t, StatusDeletedSegment, sess.Status())
}

func TestDeleteBrand_CascadesLocally(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)
	sess.store.ReplaceAllBrands([]catalog.Brand{{ID: 1, Name: "Toyota"}, {ID: 2, Name: "Nissan"}})
	sess.store.ReplaceAllVehicles([]catalog.Vehicle{
		{ID: 1, Segment: 1, Brand: 1},
		{ID: 2, Segment: 1, Brand: 2},
		{ID: 3, Segment: 2, Brand: 1},
	})

	require.NoError(t, sess.DeleteBrand(1))

	snap := sess.Snapshot()
	require.Len(t, snap.Brands, 1)
	require.Len(t, snap.Vehicles, 1)
	assert.Equal(t, 2, snap.Vehicles[0].ID)
	assert.Equal(t, StatusDeletedBrand, sess.Status())
}

func TestDeleteSegment_RemoteFailureLeavesState(t *testing.T) {
	f := newFakeClient()
	f.failDelete = true
	sess := newTestSession(f)
	sess.store.ReplaceAllSegments([]catalog.Segment{{ID: 1, Name: "SUV"}})
	sess.store.ReplaceAllVehicles([]catalog.Vehicle{{ID: 1, Segment: 1, Brand: 1}})

	require.Error(t, sess.DeleteSegment(1))

	snap := sess.Snapshot()
	assert.Len(t, snap.Segments, 1)
	assert.Len(t, snap.Vehicles, 1)
}

func TestDeleteVehicle_NoCascade(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)
	sess.store.ReplaceAllSegments([]catalog.Segment{{ID: 1, Name: "SUV"}})
	sess.store.ReplaceAllBrands([]catalog.Brand{{ID: 1, Name: "Toyota"}})
	sess.store.ReplaceAllVehicles([]catalog.Vehicle{{ID: 1, Segment: 1, Brand: 1}})

	require.NoError(t, sess.DeleteVehicle(1))

	snap := sess.Snapshot()
	assert.Len(t, snap.Segments, 1)
	assert.Len(t, snap.Brands, 1)
	assert.Empty(t, snap.Vehicles)
	assert.Equal(t, StatusDeletedVehicle, sess.Status())
}

func TestEdit_ReselectReplacesDraftWholesale(t *testing.T) {
	f := newFakeClient()
	sess := newTestSession(f)

	a := catalog.Vehicle{ID: 1, Name: "RAV4", ReleaseYear: 2019, Price: 30000, Segment: 1, Brand: 1}
	b := catalog.Vehicle{ID: 2, Name: "Leaf", ReleaseYear: 2021, Segment: 2, Brand: 2}
	sess.EditVehicle(a)
	sess.EditVehicle(b)

	assert.Equal(t, b, sess.Snapshot().VehicleDraft)
}
