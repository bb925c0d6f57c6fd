// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes a function field per interface method. Unset functions
// fall back to the mock's default return values, so tests only configure
// the calls they care about:
//
//	import "github.com/phrazzld/taskify-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    svc := &mocks.MockTaskService{
//	        GetTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
//	            return nil, store.ErrTaskNotFound
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
