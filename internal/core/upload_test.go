package core_test

import (
	"context"
	"strings"
	"testing"

	"cyberdl/internal/core"
	"cyberdl/internal/model"
	"cyberdl/internal/testutil"
	"cyberdl/internal/vault"
)

type uploadFixture struct {
	files    *testutil.FakeFilesAPI
	vault    *vault.MemoryVault
	notifier *testutil.SpyNotifier
	prompter *testutil.SpyPrompter
	svc      *core.UploadService
}

func newUploadFixture(t *testing.T, repo core.SessionRepository) *uploadFixture {
	t.Helper()
	f := &uploadFixture{
		files:    &testutil.FakeFilesAPI{},
		vault:    vault.NewMemoryVault("test-vault"),
		notifier: &testutil.SpyNotifier{},
		prompter: &testutil.SpyPrompter{},
	}
	sessions := core.NewSessionService(&testutil.FakeAuthAPI{}, repo, core.NewNopLogger())
	store := testutil.NewTestStore(t)
	registry, err := core.NewRegistry(store, f.files, f.notifier, core.NewNopLogger())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	f.svc = core.NewUploadService(f.files, sessions, registry, f.vault, f.notifier, f.prompter, core.NewNopLogger(), testutil.NewStubIDGenerator())
	return f
}

func validSubmission() model.FileSubmission {
	return model.FileSubmission{
		Name:        "Drift Handling",
		Game:        "GTA V",
		ContentType: "mods",
		ModType:     "Vehicles",
		Size:        "12 MB",
		Version:     "1.0",
		FileURL:     "https://example.com/drift.zip",
	}
}

func TestUploadService_Submit(t *testing.T) {
	t.Run("anonymous user gets the login prompt and nothing is sent", func(t *testing.T) {
		f := newUploadFixture(t, testutil.NewSessionRepo())

		if err := f.svc.Submit(context.Background(), validSubmission(), nil); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if f.prompter.Calls != 1 {
			t.Errorf("prompter calls = %d, want 1", f.prompter.Calls)
		}
		if f.files.CreateCalls != 0 {
			t.Error("Create must not be called anonymously")
		}
	})

	t.Run("publishes a URL listing and refreshes the catalog", func(t *testing.T) {
		f := newUploadFixture(t, testutil.NewAuthedRepo(7, "tok-123"))

		if err := f.svc.Submit(context.Background(), validSubmission(), nil); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}

		if f.files.CreateCalls != 1 || f.files.LastUserID != 7 {
			t.Errorf("Create call = %+v", f.files)
		}
		if f.files.LastSubmission.FileType != core.FileTypeDirect {
			t.Errorf("file type = %q, want direct", f.files.LastSubmission.FileType)
		}
		if f.files.ListCalls != 1 {
			t.Errorf("ListCalls = %d, want a post-submit refresh", f.files.ListCalls)
		}
	})

	t.Run("stores a local payload through the vault first", func(t *testing.T) {
		f := newUploadFixture(t, testutil.NewAuthedRepo(7, "tok-123"))

		sub := validSubmission()
		sub.FileURL = ""
		payload := &core.Payload{
			Name:   "drift-handling.zip",
			Size:   11,
			Reader: strings.NewReader("zip content"),
		}

		if err := f.svc.Submit(context.Background(), sub, payload); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}

		data, ok := f.vault.Get("id-1/drift-handling.zip")
		if !ok {
			t.Fatal("payload not stored in vault")
		}
		if string(data) != "zip content" {
			t.Errorf("stored payload = %q", data)
		}

		got := f.files.LastSubmission
		if got.FileURL != "memory://test-vault/id-1/drift-handling.zip" {
			t.Errorf("fileUrl = %q", got.FileURL)
		}
		if got.FileType != core.FileTypeUpload {
			t.Errorf("fileType = %q, want upload", got.FileType)
		}
	})

	t.Run("rejects incomplete submissions locally", func(t *testing.T) {
		f := newUploadFixture(t, testutil.NewAuthedRepo(7, "tok-123"))

		cases := []struct {
			name   string
			mutate func(*model.FileSubmission)
		}{
			{"missing name", func(s *model.FileSubmission) { s.Name = "" }},
			{"missing game", func(s *model.FileSubmission) { s.Game = " " }},
			{"missing type", func(s *model.FileSubmission) { s.ContentType = "" }},
			{"missing size", func(s *model.FileSubmission) { s.Size = "" }},
			{"missing version", func(s *model.FileSubmission) { s.Version = "" }},
			{"mods without mod type", func(s *model.FileSubmission) { s.ModType = "" }},
			{"no url and no payload", func(s *model.FileSubmission) { s.FileURL = "" }},
		}
		for _, tc := range cases {
			sub := validSubmission()
			tc.mutate(&sub)
			if err := f.svc.Submit(context.Background(), sub, nil); !core.IsValidationError(err) {
				t.Errorf("%s: error = %v, want ValidationError", tc.name, err)
			}
		}
		if f.files.CreateCalls != 0 {
			t.Errorf("CreateCalls = %d, want 0", f.files.CreateCalls)
		}
	})

	t.Run("download submissions need a download type", func(t *testing.T) {
		f := newUploadFixture(t, testutil.NewAuthedRepo(7, "tok-123"))

		sub := validSubmission()
		sub.ContentType = core.ContentTypeDownload
		sub.ModType = ""
		if err := f.svc.Submit(context.Background(), sub, nil); !core.IsValidationError(err) {
			t.Errorf("error = %v, want ValidationError", err)
		}

		sub.DownloadType = "RePack"
		if err := f.svc.Submit(context.Background(), sub, nil); err != nil {
			t.Errorf("Submit() error = %v", err)
		}
	})

	t.Run("publish failure surfaces and skips the refresh", func(t *testing.T) {
		f := newUploadFixture(t, testutil.NewAuthedRepo(7, "tok-123"))
		f.files.CreateErr = &core.NetworkError{Msg: "connection reset"}

		if err := f.svc.Submit(context.Background(), validSubmission(), nil); err == nil {
			t.Fatal("Submit() should fail")
		}
		if f.files.ListCalls != 0 {
			t.Errorf("ListCalls = %d, want 0 after a failed publish", f.files.ListCalls)
		}
		if n := f.notifier.Last(); n == nil || n.Kind != core.NotifyError {
			t.Errorf("notification = %+v, want error kind", n)
		}
	})

	t.Run("a failed refresh does not fail the submission", func(t *testing.T) {
		f := newUploadFixture(t, testutil.NewAuthedRepo(7, "tok-123"))
		f.files.ListErr = &core.NetworkError{Msg: "timeout"}

		if err := f.svc.Submit(context.Background(), validSubmission(), nil); err != nil {
			t.Errorf("Submit() error = %v, refresh failure must not propagate", err)
		}
	})
}
