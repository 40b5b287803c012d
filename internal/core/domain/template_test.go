package domain_test

import (
	"testing"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplateFromItem_SnapshotIsolation(t *testing.T) {
	item, err := domain.NewLineItem("li-1", "inv-1", tilingFields(), 0)
	require.NoError(t, err)

	tpl, err := domain.NewTemplateFromItem("tpl-1", item, "Wall tiling", "Per m2", "Bathroom")
	require.NoError(t, err)

	newPrice := dec("750")
	item, err = item.Apply(domain.LineItemPatch{UnitPrice: &newPrice})
	require.NoError(t, err)
	item.Label = "Floor tiling"

	assert.True(t, dec("500").Equal(tpl.Snapshot.UnitPrice))
	assert.Equal(t, "Tiling", tpl.Snapshot.Label)
	assert.True(t, dec("1").Equal(tpl.Snapshot.DefaultQuantity))
	assert.Equal(t, int64(0), tpl.UsageCount)
}

func TestNewTemplateFromItem_InvalidName(t *testing.T) {
	item, err := domain.NewLineItem("li-1", "inv-1", tilingFields(), 0)
	require.NoError(t, err)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := domain.NewTemplateFromItem("tpl-1", item, name, "", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidName)
	}
}

func TestTemplate_Instantiate(t *testing.T) {
	tpl := domain.Template{
		TemplateID: "tpl-1",
		Name:       "Sand bag",
		Snapshot: domain.TemplateSnapshot{
			Label:           "Sand",
			UnitPrice:       dec("50"),
			TaxRatePercent:  dec("0"),
			Category:        domain.CategoryMaterial,
			DefaultQuantity: dec("2"),
		},
		UsageCount: 7,
	}

	item, err := tpl.Instantiate("li-9", "inv-1", 4)

	require.NoError(t, err)
	assert.Equal(t, "Sand", item.Label)
	assert.True(t, dec("2").Equal(item.Quantity))
	assert.True(t, dec("100").Equal(item.ComputedTotal))
	assert.Equal(t, 4, item.Order)
	require.NotNil(t, item.TemplateID)
	assert.Equal(t, "tpl-1", *item.TemplateID)
	assert.Equal(t, int64(7), tpl.UsageCount)
}

func TestTemplate_ApplyKeepsUsage(t *testing.T) {
	tpl := domain.Template{TemplateID: "tpl-1", Name: "Old", UsageCount: 12}

	name := "New name"
	updated, err := tpl.Apply(domain.TemplatePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	assert.Equal(t, int64(12), updated.UsageCount)

	blank := " "
	_, err = tpl.Apply(domain.TemplatePatch{Name: &blank})
	assert.ErrorIs(t, err, apperrors.ErrInvalidName)
}

func TestTemplateFilter_Matches(t *testing.T) {
	tpl := domain.Template{
		Name:        "Wall Tiling",
		Description: "Ceramic, per square metre",
		Category:    "Bathroom",
		Snapshot:    domain.TemplateSnapshot{Label: "Tiling labour"},
	}

	tests := []struct {
		filter domain.TemplateFilter
		want   bool
	}{
		{domain.TemplateFilter{}, true},
		{domain.TemplateFilter{Query: "tiling"}, true},
		{domain.TemplateFilter{Query: "CERAMIC"}, true},
		{domain.TemplateFilter{Query: "bath"}, true},
		{domain.TemplateFilter{Query: "labour"}, true},
		{domain.TemplateFilter{Query: "roofing"}, false},
		{domain.TemplateFilter{Category: "bathroom"}, true},
		{domain.TemplateFilter{Category: "Kitchen", Query: "tiling"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.filter.Matches(tpl), "%+v", tt.filter)
	}
}
