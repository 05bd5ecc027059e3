package pets

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory, cuenta escrituras)
// -------------------------

type testRepo struct {
	byID map[string]Pet

	creates, updates, deletes int
	lists                     int

	failWrites error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.creates++
	if r.failWrites != nil {
		return r.failWrites
	}
	for _, other := range r.byID {
		if other.Username == p.Username {
			return ErrUsernameTaken
		}
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	r.updates++
	if r.failWrites != nil {
		return r.failWrites
	}
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.deletes++
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (Pet, error) {
	for _, p := range r.byID {
		if p.Username == username {
			return p, nil
		}
	}
	return Pet{}, ErrNotFound
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	r.lists++
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) ImageReferenced(ctx context.Context, imageURL string) (bool, error) {
	for _, p := range r.byID {
		if p.ImageURL == imageURL {
			return true, nil
		}
	}
	return false, nil
}

type stagerCall struct {
	op, owner, url string
}

type testStager struct {
	calls []stagerCall
}

func (s *testStager) Commit(ctx context.Context, ownerUserID, imageURL string) error {
	s.calls = append(s.calls, stagerCall{"commit", ownerUserID, imageURL})
	return nil
}

func (s *testStager) Discard(ctx context.Context, ownerUserID, imageURL string) error {
	s.calls = append(s.calls, stagerCall{"discard", ownerUserID, imageURL})
	return nil
}

func newTestService(t *testing.T) (*Service, *testRepo, *testStager) {
	t.Helper()
	repo := newTestRepo()
	stager := &testStager{}
	svc := NewService(repo, stager, nil)

	base := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc, repo, stager
}

func milo() Details {
	return Details{
		Username:     "milo_the_dog",
		Name:         "Milo",
		MobileNumber: "+15550001",
		WhatsApp:     "15550001",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Submit_CreateIsExactlyOneInsert(t *testing.T) {
	svc, repo, _ := newTestService(t)

	f := NewCreateForm()
	f.Details = milo()

	p, err := svc.Submit(context.Background(), "owner-1", f)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 0, repo.updates)
	assert.Equal(t, "owner-1", p.OwnerUserID)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, Visibility{}, p.Visibility, "create form starts with every flag off")
}

func TestService_Submit_EditIsExactlyOneUpdate(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.Create(context.Background(), "owner-1", milo(), Visibility{WhatsApp: true})
	require.NoError(t, err)

	f := NewEditForm(created)
	f.Details.Name = "Milo II"
	updated, err := svc.Submit(context.Background(), "owner-1", f)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "Milo II", repo.byID[created.ID].Name)
}

func TestService_ToggleWhatsAppOff_PersistsFlagButKeepsNumber(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.Create(context.Background(), "owner-1", milo(), Visibility{WhatsApp: true})
	require.NoError(t, err)

	f := NewEditForm(created)
	f.Toggle(FieldWhatsApp)
	_, err = svc.Submit(context.Background(), "owner-1", f)
	require.NoError(t, err)

	stored := repo.byID[created.ID]
	assert.False(t, stored.Visibility.WhatsApp)
	assert.Equal(t, "15550001", stored.WhatsApp)

	public := NewPublicProfile(stored)
	_, shown := public.Field(FieldWhatsApp)
	assert.False(t, shown)
	assert.Nil(t, public.Phone)
}

func TestService_Update_RejectsOtherOwner(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.Create(context.Background(), "owner-1", milo(), Visibility{})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, "intruder", milo(), Visibility{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, repo.updates)

	err = svc.Delete(context.Background(), created.ID, "intruder")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, repo.byID, created.ID)
}

func TestService_Create_Validation(t *testing.T) {
	svc, repo, _ := newTestService(t)

	cases := map[string]Details{
		"empty username":   {Name: "Milo"},
		"bad chars":        {Username: "milo dog", Name: "Milo"},
		"missing pet name": {Username: "milo"},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner-1", d, Visibility{})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, repo.creates, "invalid forms never reach the backend")

	_, err := svc.Create(context.Background(), "", milo(), Visibility{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_TrimsFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	d := milo()
	d.Username = "  milo  "
	d.Address = "  12 Bark St  "
	p, err := svc.Create(context.Background(), "owner-1", d, Visibility{})
	require.NoError(t, err)

	assert.Equal(t, "milo", p.Username)
	assert.Equal(t, "12 Bark St", p.Address)
}

func TestService_Create_UsernameTaken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "owner-1", milo(), Visibility{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "owner-2", milo(), Visibility{})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestService_Image_CommitOnSuccess_DiscardOnFailure(t *testing.T) {
	t.Run("create ok commits", func(t *testing.T) {
		svc, _, stager := newTestService(t)
		d := milo()
		d.ImageURL = "https://cdn/pet_images/a.png"

		_, err := svc.Create(context.Background(), "owner-1", d, Visibility{})
		require.NoError(t, err)
		assert.Equal(t, []stagerCall{{"commit", "owner-1", d.ImageURL}}, stager.calls)
	})

	t.Run("create failure discards", func(t *testing.T) {
		svc, repo, stager := newTestService(t)
		repo.failWrites = errors.New("backend down")
		d := milo()
		d.ImageURL = "https://cdn/pet_images/a.png"

		_, err := svc.Create(context.Background(), "owner-1", d, Visibility{})
		require.Error(t, err)
		assert.Equal(t, []stagerCall{{"discard", "owner-1", d.ImageURL}}, stager.calls)
	})

	t.Run("update without image change touches nothing", func(t *testing.T) {
		svc, _, stager := newTestService(t)
		d := milo()
		d.ImageURL = "https://cdn/pet_images/a.png"
		created, err := svc.Create(context.Background(), "owner-1", d, Visibility{})
		require.NoError(t, err)
		stager.calls = nil

		_, err = svc.Update(context.Background(), created.ID, "owner-1", d, Visibility{Address: true})
		require.NoError(t, err)
		assert.Empty(t, stager.calls)
	})

	t.Run("update failure discards only the new image", func(t *testing.T) {
		svc, repo, stager := newTestService(t)
		d := milo()
		d.ImageURL = "https://cdn/pet_images/old.png"
		created, err := svc.Create(context.Background(), "owner-1", d, Visibility{})
		require.NoError(t, err)
		stager.calls = nil

		repo.failWrites = errors.New("backend down")
		d.ImageURL = "https://cdn/pet_images/new.png"
		_, err = svc.Update(context.Background(), created.ID, "owner-1", d, Visibility{})
		require.Error(t, err)
		assert.Equal(t, []stagerCall{{"discard", "owner-1", "https://cdn/pet_images/new.png"}}, stager.calls)
	})
}

func TestService_Delete_RemovesFromNextList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner-1", milo(), Visibility{})
	require.NoError(t, err)
	d := milo()
	d.Username = "luna"
	b, err := svc.Create(ctx, "owner-1", d, Visibility{})
	require.NoError(t, err)

	list, err := svc.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "newest first")

	require.NoError(t, svc.Delete(ctx, a.ID, "owner-1"))

	list, err = svc.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}
