package feedback

import (
	"context"
	"encoding/json"
	"fmt"
)

// fakeAPI serves canned JSON per endpoint path and records the order
// of fetches.
type fakeAPI struct {
	repo    string
	repoErr error
	lists   map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeAPI) ResolveRepo(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return f.repo, f.repoErr
}

func (f *fakeAPI) FetchList(ctx context.Context, path string, dst any) error {
	f.calls = append(f.calls, path)
	if err := f.errs[path]; err != nil {
		return err
	}
	body, ok := f.lists[path]
	if !ok {
		return fmt.Errorf("unexpected endpoint %s", path)
	}
	return json.Unmarshal([]byte(body), dst)
}
