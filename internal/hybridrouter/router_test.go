package hybridrouter

import (
	"context"

	"github.com/flynn-ai/hybridrouter/internal/model"
)

// fakeModel is a minimal model.Model stand-in used across the test files
// in this package.
type fakeModel struct {
	provider  string
	name      string
	local     bool
	available bool
}

func (f *fakeModel) Generate(_ context.Context, _ *model.Request) (*model.Response, error) {
	return nil, nil
}
func (f *fakeModel) IsAvailable() bool        { return f.available }
func (f *fakeModel) Name() string             { return f.name }
func (f *fakeModel) IsLocal() bool            { return f.local }
func (f *fakeModel) Provider() string         { return f.provider }
func (f *fakeModel) Status() *model.ModelStatus {
	return &model.ModelStatus{Name: f.name, Available: f.available, Local: f.local}
}
