package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

func TestCreateLensTypeOptionalDescription(t *testing.T) {
	svc := NewCatalogService(newFakeLensTypeRepo(), newFakeLensRepo(), newFakeEyeGlassRepo())

	lensType, err := svc.CreateLensType(context.Background(), "Single Vision", "Corrects one field of vision")
	require.NoError(t, err)
	require.NotNil(t, lensType.Description)
	assert.Equal(t, "Corrects one field of vision", *lensType.Description)
	assert.True(t, lensType.Status)

	blank, err := svc.CreateLensType(context.Background(), "Progressive", "")
	require.NoError(t, err)
	assert.Nil(t, blank.Description)
}

func TestCreateLensStoresOptionalText(t *testing.T) {
	lensType := &entity.LensType{ID: uuid.New(), Name: "Single Vision", Status: true}
	svc := NewCatalogService(newFakeLensTypeRepo(lensType), newFakeLensRepo(), newFakeEyeGlassRepo())

	lens, err := svc.CreateLens(context.Background(), &CreateLensInput{
		LensTypeID:  lensType.ID,
		Name:        "BlueGuard 1.60",
		Description: "Blue light filtering coating",
		Price:       450000,
		Features:    "Anti-scratch, UV400",
	})
	require.NoError(t, err)

	assert.Equal(t, lensType.ID, lens.LensTypeID)
	require.NotNil(t, lens.Description)
	assert.Equal(t, "Blue light filtering coating", *lens.Description)
	require.NotNil(t, lens.Features)
	assert.Equal(t, "Anti-scratch, UV400", *lens.Features)
	assert.True(t, lens.Status)
}

func TestCreateLensBlankTextLeftNull(t *testing.T) {
	lensType := &entity.LensType{ID: uuid.New(), Name: "Single Vision", Status: true}
	svc := NewCatalogService(newFakeLensTypeRepo(lensType), newFakeLensRepo(), newFakeEyeGlassRepo())

	lens, err := svc.CreateLens(context.Background(), &CreateLensInput{
		LensTypeID: lensType.ID,
		Name:       "Standard 1.56",
		Price:      250000,
	})
	require.NoError(t, err)
	assert.Nil(t, lens.Description)
	assert.Nil(t, lens.Features)
}

func TestCreateLensUnknownLensType(t *testing.T) {
	svc := NewCatalogService(newFakeLensTypeRepo(), newFakeLensRepo(), newFakeEyeGlassRepo())

	_, err := svc.CreateLens(context.Background(), &CreateLensInput{
		LensTypeID: uuid.New(),
		Name:       "Orphan",
		Price:      100000,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
