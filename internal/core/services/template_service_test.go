package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/core/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/repositories/memory"
	"github.com/SscSPs/renovation_backoffice/internal/telemetry"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TemplateServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	userID    string
	invoiceID string
	repos     portsrepo.RepositoryProvider
	lineItems portssvc.LineItemSvcFacade
	service   portssvc.TemplateSvcFacade
}

func (suite *TemplateServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
	suite.invoiceID = "inv-" + uuid.NewString()
	suite.repos = memory.NewStore().Provider()

	metrics := telemetry.NewEngineMetrics(prometheus.NewRegistry())
	invoices := services.NewCollectionRegistry[domain.LineItem](telemetry.KindLineItems, suite.repos.LineItemRepo, metrics, 0)
	suite.lineItems = services.NewLineItemService(suite.repos.LineItemRepo, invoices)
	suite.service = services.NewTemplateService(suite.repos.TemplateRepo, suite.repos.LineItemRepo, invoices, services.WithTemplateMetrics(metrics))
}

func (suite *TemplateServiceTestSuite) createSandTemplate() *domain.Template {
	tpl, err := suite.service.CreateTemplate(suite.ctx, dto.CreateTemplateRequest{
		Name:        "Sand (bag)",
		Description: "25kg bag of building sand",
		Category:    "Masonry",
		Snapshot: dto.TemplateSnapshotRequest{
			Label:           "Sand",
			UnitPrice:       decPtr("50"),
			TaxRatePercent:  decPtr("0"),
			Category:        domain.CategoryMaterial,
			DefaultQuantity: decPtr("2"),
		},
	}, suite.userID)
	suite.Require().NoError(err)
	return tpl
}

func (suite *TemplateServiceTestSuite) TestInstantiateTemplate_CountsOneUse() {
	tpl := suite.createSandTemplate()
	before, err := suite.service.GetTemplate(suite.ctx, tpl.TemplateID)
	suite.Require().NoError(err)

	item, err := suite.service.InstantiateTemplate(suite.ctx, suite.invoiceID,
		dto.InstantiateTemplateRequest{TemplateID: tpl.TemplateID}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Sand", item.Label)
	suite.True(decimal.RequireFromString("2").Equal(item.Quantity))
	suite.True(decimal.RequireFromString("100").Equal(item.ComputedTotal))
	suite.Equal(0, item.Order)
	suite.Require().NotNil(item.TemplateID)
	suite.Equal(tpl.TemplateID, *item.TemplateID)

	after, err := suite.service.GetTemplate(suite.ctx, tpl.TemplateID)
	suite.Require().NoError(err)
	suite.Equal(before.UsageCount+1, after.UsageCount)
	suite.Equal(before.Name, after.Name)
	suite.Equal(before.Description, after.Description)
	suite.Equal(before.Category, after.Category)
	suite.True(before.Snapshot.UnitPrice.Equal(after.Snapshot.UnitPrice))

	listed, err := suite.lineItems.ListLineItems(suite.ctx, suite.invoiceID)
	suite.Require().NoError(err)
	suite.Len(listed, 1)
}

func (suite *TemplateServiceTestSuite) TestInstantiateTemplate_AppendsAtEnd() {
	tpl := suite.createSandTemplate()
	_, err := suite.lineItems.CreateLineItem(suite.ctx, suite.invoiceID, tilingRequest(), suite.userID)
	suite.Require().NoError(err)

	item, err := suite.service.InstantiateTemplate(suite.ctx, suite.invoiceID,
		dto.InstantiateTemplateRequest{TemplateID: tpl.TemplateID}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(1, item.Order)

	totals, err := suite.lineItems.CalculateTotals(suite.ctx, suite.invoiceID)
	suite.Require().NoError(err)
	suite.Equal("700.00", domain.FormatAmount(totals.GrandTotal))
}

func (suite *TemplateServiceTestSuite) TestInstantiateTemplate_NotFound() {
	item, err := suite.service.InstantiateTemplate(suite.ctx, suite.invoiceID,
		dto.InstantiateTemplateRequest{TemplateID: "missing"}, suite.userID)

	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	listed, err := suite.lineItems.ListLineItems(suite.ctx, suite.invoiceID)
	suite.Require().NoError(err)
	suite.Empty(listed)
}

func (suite *TemplateServiceTestSuite) TestSaveLineItemAsTemplate_SnapshotIsolation() {
	item, err := suite.lineItems.CreateLineItem(suite.ctx, suite.invoiceID, tilingRequest(), suite.userID)
	suite.Require().NoError(err)

	tpl, err := suite.service.SaveLineItemAsTemplate(suite.ctx, suite.invoiceID, item.LineItemID,
		dto.SaveAsTemplateRequest{Name: "Wall tiling", Category: "Bathroom"}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), tpl.UsageCount)

	newLabel := "Floor tiling"
	_, err = suite.lineItems.UpdateLineItem(suite.ctx, suite.invoiceID, item.LineItemID,
		dto.UpdateLineItemRequest{Label: &newLabel, UnitPrice: decPtr("900")}, suite.userID)
	suite.Require().NoError(err)

	stored, err := suite.service.GetTemplate(suite.ctx, tpl.TemplateID)
	suite.Require().NoError(err)
	suite.Equal("Tiling", stored.Snapshot.Label)
	suite.True(decimal.RequireFromString("500").Equal(stored.Snapshot.UnitPrice))
}

func (suite *TemplateServiceTestSuite) TestSaveAsTemplate_InvalidName() {
	item, err := suite.lineItems.CreateLineItem(suite.ctx, suite.invoiceID, tilingRequest(), suite.userID)
	suite.Require().NoError(err)

	_, err = suite.service.SaveAsTemplate(suite.ctx, *item, dto.SaveAsTemplateRequest{Name: "   "}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidName)

	_, err = suite.service.CreateTemplate(suite.ctx, dto.CreateTemplateRequest{Name: ""}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidName)

	all, err := suite.service.ListTemplates(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(all)
}

func (suite *TemplateServiceTestSuite) TestSearchTemplates() {
	sand := suite.createSandTemplate()
	item, err := suite.lineItems.CreateLineItem(suite.ctx, suite.invoiceID, tilingRequest(), suite.userID)
	suite.Require().NoError(err)
	_, err = suite.service.SaveAsTemplate(suite.ctx, *item, dto.SaveAsTemplateRequest{Name: "Wall tiling", Category: "Bathroom"}, suite.userID)
	suite.Require().NoError(err)

	found, err := suite.service.SearchTemplates(suite.ctx, dto.SearchTemplatesParams{Query: "SAND"})
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(sand.TemplateID, found[0].TemplateID)

	found, err = suite.service.SearchTemplates(suite.ctx, dto.SearchTemplatesParams{Query: "bathroom"})
	suite.Require().NoError(err)
	suite.Len(found, 1)

	found, err = suite.service.SearchTemplates(suite.ctx, dto.SearchTemplatesParams{Query: "roof"})
	suite.Require().NoError(err)
	suite.NotNil(found)
	suite.Empty(found)
}

func (suite *TemplateServiceTestSuite) TestListTemplates_MostUsedFirst() {
	sand := suite.createSandTemplate()
	item, err := suite.lineItems.CreateLineItem(suite.ctx, suite.invoiceID, tilingRequest(), suite.userID)
	suite.Require().NoError(err)
	_, err = suite.service.SaveAsTemplate(suite.ctx, *item, dto.SaveAsTemplateRequest{Name: "A tiling"}, suite.userID)
	suite.Require().NoError(err)

	_, err = suite.service.InstantiateTemplate(suite.ctx, suite.invoiceID, dto.InstantiateTemplateRequest{TemplateID: sand.TemplateID}, suite.userID)
	suite.Require().NoError(err)

	all, err := suite.service.ListTemplates(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal(sand.TemplateID, all[0].TemplateID)
}

func (suite *TemplateServiceTestSuite) TestUpdateTemplate_KeepsUsageCount() {
	tpl := suite.createSandTemplate()
	for i := 0; i < 3; i++ {
		_, err := suite.service.InstantiateTemplate(suite.ctx, suite.invoiceID, dto.InstantiateTemplateRequest{TemplateID: tpl.TemplateID}, suite.userID)
		suite.Require().NoError(err)
	}

	name := "Sharp sand (bag)"
	updated, err := suite.service.UpdateTemplate(suite.ctx, tpl.TemplateID, dto.UpdateTemplateRequest{
		Name: &name,
		Snapshot: &dto.TemplateSnapshotRequest{
			Label:           "Sharp sand",
			UnitPrice:       decPtr("55"),
			TaxRatePercent:  decPtr("5"),
			Category:        domain.CategoryMaterial,
			DefaultQuantity: decPtr("1"),
		},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(name, updated.Name)
	suite.Equal(int64(3), updated.UsageCount)

	stored, err := suite.service.GetTemplate(suite.ctx, tpl.TemplateID)
	suite.Require().NoError(err)
	suite.Equal(int64(3), stored.UsageCount)
	suite.Equal("Sharp sand", stored.Snapshot.Label)

	_, err = suite.service.UpdateTemplate(suite.ctx, "missing", dto.UpdateTemplateRequest{Name: &name}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTemplateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateServiceTestSuite))
}
