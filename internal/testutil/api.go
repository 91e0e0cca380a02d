package testutil

import (
	"context"
	"sync"

	"cyberdl/internal/model"
)

// FakeAuthAPI is an in-memory core.AuthAPI. Configure Session or Err before
// use; call counts are recorded for assertions.
type FakeAuthAPI struct {
	mu sync.Mutex

	Session *model.Session
	Err     error

	LoginCalls    int
	RegisterCalls int
}

func (f *FakeAuthAPI) Login(_ context.Context, email, password string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Session, nil
}

func (f *FakeAuthAPI) Register(_ context.Context, username, email, password string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Session, nil
}

// FakeCommentsAPI is an in-memory core.CommentsAPI. Comments holds what List
// returns; CreateErr/DeleteErr/ListErr inject failures per operation.
type FakeCommentsAPI struct {
	mu sync.Mutex

	Comments  []model.Comment
	ListErr   error
	CreateErr error
	DeleteErr error

	// OnList, when set, runs before each List returns. Lets a test flip the
	// active file mid-flight.
	OnList func()

	ListCalls   int
	CreateCalls int
	DeleteCalls int

	LastToken   string
	LastFileID  int64
	LastContent string
	LastRating  int
}

func (f *FakeCommentsAPI) List(_ context.Context, fileID int64) ([]model.Comment, error) {
	f.mu.Lock()
	f.ListCalls++
	f.LastFileID = fileID
	onList := f.OnList
	comments := append([]model.Comment(nil), f.Comments...)
	err := f.ListErr
	f.mu.Unlock()

	if onList != nil {
		onList()
	}
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (f *FakeCommentsAPI) Create(_ context.Context, token string, fileID int64, content string, rating int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastToken = token
	f.LastFileID = fileID
	f.LastContent = content
	f.LastRating = rating
	return f.CreateErr
}

func (f *FakeCommentsAPI) Delete(_ context.Context, token string, commentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastToken = token
	return f.DeleteErr
}

// FakeFilesAPI is an in-memory core.FilesAPI.
type FakeFilesAPI struct {
	mu sync.Mutex

	Records   []model.RemoteFileRecord
	ListErr   error
	CreateErr error

	ListCalls   int
	CreateCalls int

	LastUserID     int64
	LastSubmission model.FileSubmission
}

func (f *FakeFilesAPI) List(_ context.Context) ([]model.RemoteFileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]model.RemoteFileRecord(nil), f.Records...), nil
}

func (f *FakeFilesAPI) Create(_ context.Context, userID int64, sub model.FileSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastUserID = userID
	f.LastSubmission = sub
	return f.CreateErr
}
