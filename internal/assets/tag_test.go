package assets

import (
	"context"
	"regexp"
	"testing"
	"unicode/utf8"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestGenerateTagDefaultInitials(t *testing.T) {
	svc, _, _ := setupAssetsTest(t)

	tag, err := svc.GenerateTag(context.Background(), TagInput{PurchaseYear: 2024})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^24-\d{6}-AT$`), tag)
}

func TestGenerateTagCompanyInitials(t *testing.T) {
	svc, db, _ := setupAssetsTest(t)
	require.NoError(t, db.Create(&models.CompanyInfo{CompanyName: "Go Codes"}).Error)

	tag, err := svc.GenerateTag(context.Background(), TagInput{PurchaseYear: 2023, SubCategory: "l"})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^23-\d{6}L-GC$`), tag)
}

func TestGenerateTagMultiByteInitials(t *testing.T) {
	svc, db, _ := setupAssetsTest(t)
	require.NoError(t, db.Create(&models.CompanyInfo{CompanyName: "Ångström labs"}).Error)

	tag, err := svc.GenerateTag(context.Background(), TagInput{PurchaseYear: 2024})
	require.NoError(t, err)
	require.True(t, utf8.ValidString(tag))
	require.Regexp(t, regexp.MustCompile(`^24-\d{6}-ÅL$`), tag)
}

func TestGenerateTagSubCategoryValidation(t *testing.T) {
	svc, _, _ := setupAssetsTest(t)

	_, err := svc.GenerateTag(context.Background(), TagInput{SubCategory: "XY"})
	require.Error(t, err)
	require.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestGenerateTagUnique(t *testing.T) {
	svc, _, _ := setupAssetsTest(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		tag, err := svc.GenerateTag(ctx, TagInput{})
		require.NoError(t, err)
		require.False(t, seen[tag])
		seen[tag] = true

		_, err = svc.Create(ctx, CreateInput{AssetTagID: tag, Description: "generated"})
		require.NoError(t, err)
	}
}
