package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pleygg/content-api/internal/apperr"
)

type stubOracle struct {
	permitted bool
	err       error
}

func (s *stubOracle) Authenticate(context.Context, Surface, string) (*Actor, error) {
	return nil, nil
}

func (s *stubOracle) IsPermitted(context.Context, Actor, Operation, Permission) (bool, error) {
	return s.permitted, s.err
}

func admin() *Actor {
	return &Actor{ID: uuid.New(), Type: ActorAdmin, Role: "editor"}
}

func TestAuthorize_AdminSurface(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		actor    *Actor
		oracle   stubOracle
		wantCode apperr.Code
	}{
		{
			name:     "no actor is unauthenticated",
			actor:    nil,
			oracle:   stubOracle{permitted: true},
			wantCode: apperr.CodeUnauthenticated,
		},
		{
			name:     "non-admin actor is unauthorized",
			actor:    &Actor{ID: uuid.New(), Type: ActorUser},
			oracle:   stubOracle{permitted: true},
			wantCode: apperr.CodeUnauthorized,
		},
		{
			name:     "missing permission is unauthorized",
			actor:    admin(),
			oracle:   stubOracle{permitted: false},
			wantCode: apperr.CodeUnauthorized,
		},
		{
			name:     "oracle failure is upstream",
			actor:    admin(),
			oracle:   stubOracle{err: fmt.Errorf("identity service down")},
			wantCode: apperr.CodeUpstream,
		},
		{
			name:   "permitted admin allowed",
			actor:  admin(),
			oracle: stubOracle{permitted: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(&tt.oracle)
			err := gate.Authorize(ctx, SurfaceAdmin, tt.actor, OpCreate, PermArticleCreate)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
		})
	}
}

func TestAuthorize_ChecksRunInOrder(t *testing.T) {
	// nil actor with a failing oracle must still surface
	// unauthenticated: the checks short-circuit in fixed order.
	gate := NewGate(&stubOracle{err: fmt.Errorf("boom")})
	err := gate.Authorize(context.Background(), SurfaceAdmin, nil, OpUpdate, PermArticleUpdate)
	assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
}

func TestAuthorize_AppSurfaceMutationsNeverPermitted(t *testing.T) {
	gate := NewGate(&stubOracle{permitted: true})

	for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
		err := gate.Authorize(context.Background(), SurfaceApp, admin(), op, PermArticleCreate)
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err), "op %s", op)
	}
}
