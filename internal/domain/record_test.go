package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestRecordFlags(t *testing.T) {
	r := &Record{
		VitalsAM: Vitals{Temperature: f64(37.5)},
		VitalsPM: Vitals{Temperature: f64(36.9)},
		Meals: Meals{
			Breakfast: Meal{Done: true, Score: 3},
			Lunch:     Meal{Done: true, Score: 4},
			Dinner:    Meal{Done: false, Score: 0},
		},
		Medication: Medication{Bedtime: true},
		Patrols:    []Patrol{{PatrolNo: 1}, {PatrolNo: 2}},
	}

	f := r.Flags()
	assert.True(t, f.FeverAM)
	assert.False(t, f.FeverPM)
	assert.True(t, f.LowIntakeBreak)
	assert.False(t, f.LowIntakeLunch)
	assert.False(t, f.LowIntakeDinner, "a skipped meal is not low intake")
	assert.True(t, f.Medicated)
	assert.Equal(t, 2, f.PatrolCount)
}

func TestTimeOfDay(t *testing.T) {
	assert.True(t, TimeOfDay{Hour: 0, Minute: 0}.Valid())
	assert.True(t, TimeOfDay{Hour: 23, Minute: 59}.Valid())
	assert.False(t, TimeOfDay{Hour: 24, Minute: 0}.Valid())
	assert.False(t, TimeOfDay{Hour: 8, Minute: 60}.Valid())
	assert.Equal(t, "07:05", TimeOfDay{Hour: 7, Minute: 5}.String())
}

func TestPatrolHasContent(t *testing.T) {
	assert.False(t, Patrol{PatrolNo: 1}.HasContent())
	assert.True(t, Patrol{PatrolNo: 1, DoorOpened: true}.HasContent())
	assert.True(t, Patrol{PatrolNo: 1, SafetyChecks: []string{"no_hazards"}}.HasContent())
	assert.True(t, Patrol{PatrolNo: 2, Time: &TimeOfDay{Hour: 2}}.HasContent())
}

func TestVitalsEmpty(t *testing.T) {
	assert.True(t, Vitals{}.Empty())
	p := 72
	assert.False(t, Vitals{Pulse: &p}.Empty())
}
