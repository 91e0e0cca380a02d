package core_test

import (
	"context"
	"testing"

	"cyberdl/internal/core"
	"cyberdl/internal/model"
	"cyberdl/internal/testutil"
)

func newTestRegistry(t *testing.T, files *testutil.FakeFilesAPI, notifier *testutil.SpyNotifier) *core.Registry {
	t.Helper()
	store := testutil.NewTestStore(t)
	reg, err := core.NewRegistry(store, files, notifier, core.NewNopLogger())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func TestRegistry(t *testing.T) {
	t.Run("serves the curated catalog before the first refresh", func(t *testing.T) {
		reg := newTestRegistry(t, &testutil.FakeFilesAPI{}, &testutil.SpyNotifier{})

		entries := reg.Entries()
		if len(entries) != 6 {
			t.Fatalf("len(Entries()) = %d, want 6", len(entries))
		}
		for _, e := range entries {
			if !e.IsOfficial {
				t.Errorf("curated entry %s should be official", e.ID)
			}
		}
	})

	t.Run("refresh appends fetched entries after curated ones", func(t *testing.T) {
		files := &testutil.FakeFilesAPI{
			Records: []model.RemoteFileRecord{
				{ID: 10, Name: "Drift Handling", Game: "GTA V", ContentType: "mods", ModType: "Vehicles", Size: "12 MB", Version: "1.0", FileURL: "https://example.com/drift.zip", FileType: "direct", Author: "driftking"},
			},
		}
		reg := newTestRegistry(t, files, &testutil.SpyNotifier{})

		if err := reg.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}

		entries := reg.Entries()
		if len(entries) != 7 {
			t.Fatalf("len(Entries()) = %d, want 7", len(entries))
		}

		last := entries[len(entries)-1]
		if last.ID != "user-10" {
			t.Errorf("fetched entry id = %q, want user-10", last.ID)
		}
		if last.IsOfficial {
			t.Error("fetched entry should not be official")
		}
		if last.Category != core.CategoryGames {
			t.Errorf("fetched entry category = %q, want games", last.Category)
		}
		if last.Author != "driftking" {
			t.Errorf("fetched entry author = %q", last.Author)
		}
	})

	t.Run("refresh replaces the fetched set wholesale", func(t *testing.T) {
		files := &testutil.FakeFilesAPI{
			Records: []model.RemoteFileRecord{{ID: 10, Name: "A"}, {ID: 11, Name: "B"}},
		}
		reg := newTestRegistry(t, files, &testutil.SpyNotifier{})

		if err := reg.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}

		files.Records = []model.RemoteFileRecord{{ID: 12, Name: "C"}}
		if err := reg.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}

		entries := reg.Entries()
		if len(entries) != 7 {
			t.Fatalf("len(Entries()) = %d, want 7", len(entries))
		}
		if entries[6].ID != "user-12" {
			t.Errorf("surviving fetched entry = %q, want user-12", entries[6].ID)
		}
	})

	t.Run("failed refresh keeps the previous list and notifies", func(t *testing.T) {
		files := &testutil.FakeFilesAPI{
			Records: []model.RemoteFileRecord{{ID: 10, Name: "A"}},
		}
		notifier := &testutil.SpyNotifier{}
		reg := newTestRegistry(t, files, notifier)

		if err := reg.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}

		files.ListErr = &core.NetworkError{Msg: "connection refused"}
		if err := reg.Refresh(context.Background()); err == nil {
			t.Fatal("Refresh() should fail")
		}

		if len(reg.Entries()) != 7 {
			t.Errorf("len(Entries()) = %d, want previous 7", len(reg.Entries()))
		}
		last := notifier.Last()
		if last == nil || last.Kind != core.NotifyError {
			t.Errorf("expected an error notification, got %+v", last)
		}
	})

	t.Run("curated entry without a file url is not downloadable", func(t *testing.T) {
		reg := newTestRegistry(t, &testutil.FakeFilesAPI{}, &testutil.SpyNotifier{})

		entry := reg.FindByID("official-6")
		if entry == nil {
			t.Fatal("official-6 not found")
		}
		if entry.Downloadable() {
			t.Error("entry without a file url should not be downloadable")
		}

		other := reg.FindByID("official-1")
		if other == nil || !other.Downloadable() {
			t.Error("official-1 should be downloadable")
		}
	})

	t.Run("unknown id yields nil", func(t *testing.T) {
		reg := newTestRegistry(t, &testutil.FakeFilesAPI{}, &testutil.SpyNotifier{})
		if e := reg.FindByID("official-999"); e != nil {
			t.Errorf("FindByID = %v, want nil", e)
		}
	})
}
