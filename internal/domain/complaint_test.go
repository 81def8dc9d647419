package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySDGMapping(t *testing.T) {
	want := map[ComplaintCategory]string{
		CategoryWaste:       "SDG 11: Sustainable Cities",
		CategoryWater:       "SDG 6: Clean Water & Sanitation",
		CategoryRoad:        "SDG 9: Industry, Innovation & Infrastructure",
		CategoryStreetlight: "SDG 7: Affordable & Clean Energy",
		CategoryHazard:      "SDG 3: Good Health & Well-being",
	}
	assert.Len(t, ComplaintCategories(), len(want))
	for _, c := range ComplaintCategories() {
		assert.True(t, c.Valid())
		assert.Equal(t, want[c], c.SDGGoal(), c)
	}
	assert.False(t, ComplaintCategory("NOISE").Valid())
	assert.Empty(t, ComplaintCategory("NOISE").SDGGoal())
}

func TestParseComplaintCategory(t *testing.T) {
	c, ok := ParseComplaintCategory(" water ")
	assert.True(t, ok)
	assert.Equal(t, CategoryWater, c)

	_, ok = ParseComplaintCategory("potholes")
	assert.False(t, ok)
}

func TestParseComplaintStatus(t *testing.T) {
	s, ok := ParseComplaintStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, ComplaintStatusInProgress, s)

	_, ok = ParseComplaintStatus("CLOSED")
	assert.False(t, ok)
	assert.Len(t, ComplaintStatuses(), 3)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleCitizen, r)

	r, ok = ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)

	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (*User)(nil).IsAdmin())
}
