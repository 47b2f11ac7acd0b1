package assets

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

const (
	tagAttempts        = 100
	defaultTagInitials = "AT"
)

// TagInput drives tag generation.
type TagInput struct {
	// PurchaseYear selects the two-digit year prefix. Zero means current year.
	PurchaseYear int `json:"purchase_year"`
	// SubCategory is an optional single letter appended to the random part.
	SubCategory string `json:"sub_category"`
}

// GenerateTag produces a unique asset tag of the form YY-RRRRRRS-II where
// YY is the purchase year, RRRRRR six random digits, S the optional
// sub-category letter and II the company initials. It retries on collision.
func (s *Service) GenerateTag(ctx context.Context, in TagInput) (string, error) {
	year := in.PurchaseYear
	if year == 0 {
		year = time.Now().Year()
	}

	sub := strings.ToUpper(strings.TrimSpace(in.SubCategory))
	if len(sub) > 1 {
		return "", apperr.BadRequestf("Sub-category must be a single letter")
	}

	initials, err := s.companyInitials(ctx)
	if err != nil {
		return "", err
	}

	for i := 0; i < tagAttempts; i++ {
		tag := fmt.Sprintf("%02d-%06d%s-%s", year%100, rand.Intn(1000000), sub, initials)
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Asset{}).
			Where("asset_tag_id = ?", tag).Count(&count).Error; err != nil {
			return "", apperr.FromStorage(err)
		}
		if count == 0 {
			return tag, nil
		}
	}
	return "", apperr.Internal(fmt.Errorf("could not generate a unique asset tag after %d attempts", tagAttempts))
}

// companyInitials derives the tag suffix from the most recent company
// profile: first letter of each word, uppercased. Without a profile the
// suffix falls back to defaultTagInitials.
func (s *Service) companyInitials(ctx context.Context) (string, error) {
	var info models.CompanyInfo
	err := s.DB.WithContext(ctx).Order("created_at DESC").First(&info).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return defaultTagInitials, nil
		}
		return "", apperr.FromStorage(err)
	}

	var b strings.Builder
	for _, word := range strings.Fields(info.CompanyName) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteString(strings.ToUpper(string(r)))
	}
	if b.Len() == 0 {
		return defaultTagInitials, nil
	}
	return b.String(), nil
}
