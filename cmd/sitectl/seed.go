package main

import (
	"context"
	"errors"
	"fmt"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
	"construction-cms/pkg/utils"
)

func strPtr(s string) *string { return &s }

// seed loads a small set of demo site content plus an admin account.
// Safe to run more than once: the duplicate admin email is tolerated.
func seed(ctx context.Context, st storage.Store, adminEmail, adminPassword string) error {
	admin := &domain.User{
		Name:     "Site Admin",
		Email:    adminEmail,
		Password: utils.HashPassword(adminPassword),
		Role:     "admin",
	}
	if err := st.Users().Create(ctx, admin); err != nil {
		if !errors.Is(err, storage.ErrDuplicateKey) {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	slides := []domain.CarouselItem{
		{
			Title:         "Building Tomorrow",
			ImageURL:      "/uploads/carousel/site-overview.jpg",
			LinkURL:       strPtr("/projects"),
			LinkText:      strPtr("See our projects"),
			IsActive:      true,
			TextPosition:  domain.PosBottomLeft,
			TextDirection: domain.DirHorizontal,
		},
		{
			Title:         "Craftsmanship Since 1987",
			ImageURL:      "/uploads/carousel/workshop.jpg",
			IsActive:      true,
			TextPosition:  domain.PosCenter,
			TextDirection: domain.DirHorizontal,
		},
	}
	for i := range slides {
		slides[i].Order = -1
		if err := st.Carousel().Create(ctx, &slides[i]); err != nil {
			return fmt.Errorf("seed carousel: %w", err)
		}
	}

	proj := &domain.Project{
		Title:       "Riverside Residences",
		Description: strPtr("Twelve-unit residential complex on the old mill site."),
		Category:    domain.CategoryNew,
		Order:       -1,
		IsActive:    true,
		Details: domain.ProjectDetails{
			Specs: []domain.DetailItem{
				{Label: "Floor area", Value: "4 200 m2"},
				{Label: "Completion", Value: "2025"},
			},
			Features:    []string{"Geothermal heating", "Green roof"},
			Description: "Full design-and-build delivery including landscaping.",
		},
	}
	if err := st.Projects().Create(ctx, proj); err != nil {
		return fmt.Errorf("seed project: %w", err)
	}
	for i, url := range []string{
		"/uploads/projects/riverside-front.jpg",
		"/uploads/projects/riverside-court.jpg",
	} {
		img := &domain.ProjectImage{ImageURL: url, ProjectID: proj.ID, Order: i + 1}
		if err := st.ProjectImages().Create(ctx, img); err != nil {
			return fmt.Errorf("seed project image: %w", err)
		}
	}

	doc := &domain.Document{
		Title:     "Riverside Sales Brochure",
		FileURL:   "/uploads/documents/riverside-brochure.pdf",
		FileType:  "pdf",
		Category:  "brochures",
		Order:     -1,
		IsActive:  true,
		ProjectID: &proj.ID,
	}
	if err := st.Documents().Create(ctx, doc); err != nil {
		return fmt.Errorf("seed document: %w", err)
	}

	hb := &domain.Handbook{
		Title:         "Riverside Owner Handbook",
		CoverImageURL: "/uploads/handbooks/riverside-cover.jpg",
		Password:      utils.HashPassword("riverside"),
		Order:         -1,
		IsActive:      true,
		ProjectID:     &proj.ID,
	}
	if err := st.Handbooks().Create(ctx, hb); err != nil {
		return fmt.Errorf("seed handbook: %w", err)
	}
	hf := &domain.HandbookFile{
		HandbookID: hb.ID,
		Title:      "Maintenance Guide",
		FileURL:    "/uploads/handbooks/riverside-maintenance.pdf",
		FileType:   "pdf",
		Order:      1,
	}
	if err := st.HandbookFiles().Create(ctx, hf); err != nil {
		return fmt.Errorf("seed handbook file: %w", err)
	}

	return nil
}
