package scene

import (
	"testing"

	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := New(name, 16.0/9.0)
			require.NoError(t, err)
			assert.NotNil(t, s.Camera)
			assert.NotEmpty(t, s.Shapes)
		})
	}

	s, err := New("nonexistent", 1)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestBackground(t *testing.T) {
	s := &Scene{
		TopColor:    core.NewVec3(0, 0, 1),
		BottomColor: core.NewVec3(1, 1, 1),
	}

	up := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, 5, 0)))
	assert.InDelta(t, 0, up.X, 1e-9)
	assert.InDelta(t, 1, up.Z, 1e-9)

	down := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)))
	assert.Equal(t, core.NewVec3(1, 1, 1), down)
}

func TestSphereGridIsReproducible(t *testing.T) {
	a := NewSphereGridScene(1)
	b := NewSphereGridScene(1)
	require.Equal(t, len(a.Shapes), len(b.Shapes))

	for i := range a.Shapes {
		sa, okA := a.Shapes[i].(*geometry.Sphere)
		sb, okB := b.Shapes[i].(*geometry.Sphere)
		require.Equal(t, okA, okB)
		if okA {
			assert.Equal(t, sa.Center, sb.Center)
			assert.Equal(t, sa.Material, sb.Material)
		}
	}
}
