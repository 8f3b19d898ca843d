package mechanic

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"wrenchworks/models"
	"wrenchworks/services/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMechanicRepo struct {
	mechanics map[string]*models.Mechanic
}

func newFakeMechanicRepo() *fakeMechanicRepo {
	return &fakeMechanicRepo{mechanics: make(map[string]*models.Mechanic)}
}

func (r *fakeMechanicRepo) GetByID(id string) (*models.Mechanic, error) {
	m, ok := r.mechanics[id]
	if !ok {
		return nil, fmt.Errorf("mechanic %s not found", id)
	}
	cp := *m
	cp.Blocks = append([]models.ScheduleBlock(nil), m.Blocks...)
	return &cp, nil
}

func (r *fakeMechanicRepo) GetAll() ([]models.Mechanic, error) {
	var out []models.Mechanic
	for _, m := range r.mechanics {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMechanicRepo) GetAllActive() ([]models.Mechanic, error) {
	var out []models.Mechanic
	for _, m := range r.mechanics {
		if m.Active {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMechanicRepo) GetAllBlocks() ([]models.ScheduleBlock, error) {
	var out []models.ScheduleBlock
	for _, m := range r.mechanics {
		if m.Active {
			out = append(out, m.Blocks...)
		}
	}
	return out, nil
}

func (r *fakeMechanicRepo) CountActive() (int, error) {
	n := 0
	for _, m := range r.mechanics {
		if m.Active {
			n++
		}
	}
	return n, nil
}

func (r *fakeMechanicRepo) Create(m *models.Mechanic) error {
	cp := *m
	r.mechanics[m.ID] = &cp
	return nil
}

func (r *fakeMechanicRepo) Update(m *models.Mechanic) error {
	if _, ok := r.mechanics[m.ID]; !ok {
		return fmt.Errorf("mechanic %s not found", m.ID)
	}
	cp := *m
	r.mechanics[m.ID] = &cp
	return nil
}

func (r *fakeMechanicRepo) Delete(id string) error {
	delete(r.mechanics, id)
	return nil
}

func (r *fakeMechanicRepo) ReplaceSchedule(mechanicID string, blocks []models.ScheduleBlock) error {
	m, ok := r.mechanics[mechanicID]
	if !ok {
		return fmt.Errorf("mechanic %s not found", mechanicID)
	}
	m.Blocks = append([]models.ScheduleBlock(nil), blocks...)
	return nil
}

func TestCreateMechanic(t *testing.T) {
	t.Run("stamps ownership onto initial blocks", func(t *testing.T) {
		svc := &DefaultMechanicService{Repo: newFakeMechanicRepo()}

		m, err := svc.CreateMechanic(models.Mechanic{
			DisplayName: "Ana",
			Email:       "ana@workshop.test",
			Blocks: []models.ScheduleBlock{
				{Day: time.Monday, Start: 540, End: 1020},
			},
		})
		require.NoError(t, err)
		assert.True(t, m.Active)
		require.Len(t, m.Blocks, 1)
		assert.Equal(t, m.ID, m.Blocks[0].MechanicID)
	})

	t.Run("rejects an invalid initial schedule", func(t *testing.T) {
		svc := &DefaultMechanicService{Repo: newFakeMechanicRepo()}

		_, err := svc.CreateMechanic(models.Mechanic{
			DisplayName: "Ana",
			Email:       "ana@workshop.test",
			Blocks: []models.ScheduleBlock{
				{Day: time.Monday, Start: 1020, End: 540},
			},
		})
		var inverted *schedule.InvertedIntervalError
		assert.True(t, errors.As(err, &inverted))
	})
}

func TestReplaceSchedule(t *testing.T) {
	newSvc := func(t *testing.T) (*DefaultMechanicService, *models.Mechanic) {
		t.Helper()
		svc := &DefaultMechanicService{Repo: newFakeMechanicRepo()}
		m, err := svc.CreateMechanic(models.Mechanic{
			DisplayName: "Ana",
			Email:       "ana@workshop.test",
			Blocks: []models.ScheduleBlock{
				{Day: time.Monday, Start: 540, End: 1020},
			},
		})
		require.NoError(t, err)
		return svc, m
	}

	t.Run("swaps the whole block set", func(t *testing.T) {
		svc, m := newSvc(t)

		updated, err := svc.ReplaceSchedule(m.ID, []models.ScheduleBlock{
			{Day: time.Tuesday, Start: 480, End: 720},
			{Day: time.Tuesday, Start: 720, End: 960},
		})
		require.NoError(t, err)
		require.Len(t, updated.Blocks, 2)
		assert.Equal(t, time.Tuesday, updated.Blocks[0].Day)
		assert.Equal(t, m.ID, updated.Blocks[0].MechanicID)
	})

	t.Run("one bad block rejects the whole set and keeps the old schedule", func(t *testing.T) {
		svc, m := newSvc(t)

		_, err := svc.ReplaceSchedule(m.ID, []models.ScheduleBlock{
			{Day: time.Tuesday, Start: 480, End: 720},
			{Day: time.Tuesday, Start: 700, End: 960}, // overlaps the first
		})
		var overlap *schedule.OverlapError
		require.True(t, errors.As(err, &overlap))
		assert.Equal(t, time.Tuesday, overlap.Day)

		kept, err := svc.GetMechanicByID(m.ID)
		require.NoError(t, err)
		require.Len(t, kept.Blocks, 1)
		assert.Equal(t, time.Monday, kept.Blocks[0].Day)
	})

	t.Run("unknown mechanic fails before validation", func(t *testing.T) {
		svc, _ := newSvc(t)

		_, err := svc.ReplaceSchedule("nope", nil)
		assert.Error(t, err)
	})

	t.Run("an empty set clears the schedule", func(t *testing.T) {
		svc, m := newSvc(t)

		updated, err := svc.ReplaceSchedule(m.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, updated.Blocks)
	})
}
