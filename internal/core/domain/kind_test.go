package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSpec_ClientRelated(t *testing.T) {
	clientRelated := []Kind{KindProject, KindTask, KindSection, KindStory, KindAttachment}
	for _, k := range clientRelated {
		assert.True(t, k.Spec().ClientRelated, "kind %s should be client-related", k)
	}

	general := []Kind{KindWorkspace, KindTeam, KindUser, KindTeamMembership,
		KindTag, KindCustomField, KindProjectTemplate, KindStatusUpdate}
	for _, k := range general {
		assert.False(t, k.Spec().ClientRelated, "kind %s should be general", k)
	}
}

func TestKindSpec_Ignored(t *testing.T) {
	assert.True(t, KindCustomFieldSetting.Spec().Ignored)
	assert.True(t, KindEnumOption.Spec().Ignored)

	for _, k := range AllKinds() {
		assert.False(t, k.Spec().Ignored, "kind %s should not be ignored", k)
	}
}

func TestKindSpec_Enrichment(t *testing.T) {
	tests := []struct {
		kind   Kind
		enrich bool
	}{
		{KindTeam, true},
		{KindProject, true},
		{KindTask, true},
		{KindStory, true},
		{KindStatusUpdate, true},
		{KindCustomField, true},
		{KindWorkspace, false},
		{KindUser, false},
		{KindSection, false},
		{KindAttachment, false},
	}

	for _, tt := range tests {
		spec := tt.kind.Spec()
		assert.Equal(t, tt.enrich, spec.Enrich, "kind %s", tt.kind)
		if tt.enrich {
			assert.NotEmpty(t, spec.EnrichFields, "kind %s must declare enrichment fields", tt.kind)
		}
	}
}

func TestKindSpec_ChildEdges(t *testing.T) {
	assert.Equal(t, []Kind{KindTask, KindSection, KindStatusUpdate}, KindProject.Spec().ChildKinds)
	assert.Equal(t, []Kind{KindTask}, KindTask.Spec().ChildKinds)

	for _, k := range AllKinds() {
		spec := k.Spec()
		assert.Equal(t, k == KindTask, spec.Narrative, "kind %s", k)
		if k != KindProject && k != KindTask {
			assert.Empty(t, spec.ChildKinds, "kind %s", k)
		}
	}
}

func TestKindSpec_UnknownKindIsZero(t *testing.T) {
	spec := Kind("portfolio").Spec()
	assert.False(t, spec.Ignored)
	assert.False(t, spec.ClientRelated)
	assert.Empty(t, spec.RefFields)
	assert.Empty(t, spec.RefListFields)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("status_update")
	assert.NoError(t, err)
	assert.Equal(t, KindStatusUpdate, k)

	_, err = ParseKind("portfolio")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
