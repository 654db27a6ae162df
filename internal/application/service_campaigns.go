package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func (s *Service) CreateCampaign(ctx context.Context, actor Actor, input CreateCampaignInput) (domain.Campaign, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Campaign{}, domain.ErrUnauthorized
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := domain.ValidateCreateCampaignInput(actor.SubjectID, input.Title, input.Goal, input.DurationDays); err != nil {
		return domain.Campaign{}, err
	}
	now := s.nowFn()
	campaign := domain.Campaign{
		CampaignID:   uuid.NewString(),
		OwnerID:      actor.SubjectID,
		Title:        input.Title,
		Goal:         input.Goal,
		DurationDays: input.DurationDays,
		Methods:      input.Methods,
		Status:       domain.CampaignStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return domain.Campaign{}, err
	}
	return campaign, nil
}

func (s *Service) PublishCampaign(ctx context.Context, actor Actor, campaignID string) (domain.Campaign, error) {
	campaign, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	if campaign.Status == domain.CampaignStatusPublished {
		return campaign, nil
	}
	now := s.nowFn()
	campaign.Status = domain.CampaignStatusPublished
	campaign.UpdatedAt = now
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return domain.Campaign{}, err
	}
	if err := s.enqueueCampaignPublished(ctx, campaign, actor.RequestID, now); err != nil {
		return domain.Campaign{}, err
	}
	return campaign, nil
}

func (s *Service) UpdateCampaignMethods(ctx context.Context, actor Actor, campaignID string, methods domain.MethodFlags) (domain.Campaign, error) {
	campaign, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	campaign.Methods = methods
	campaign.UpdatedAt = s.nowFn()
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return domain.Campaign{}, err
	}
	return campaign, nil
}

func (s *Service) GetCampaign(ctx context.Context, campaignID string) (domain.Campaign, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return domain.Campaign{}, domain.ErrValidation
	}
	return s.campaigns.GetByID(ctx, campaignID)
}

func (s *Service) ListCampaigns(ctx context.Context, status domain.CampaignStatus, limit, offset int) (ListCampaignsOutput, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, total, err := s.campaigns.List(ctx, status, limit, offset)
	if err != nil {
		return ListCampaignsOutput{}, err
	}
	return ListCampaignsOutput{
		Items:      items,
		Pagination: Pagination{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// RecordCampaignView bumps the engagement counter shown on the reporting
// dashboard. Views are not part of the financial ledger and tolerate loss.
func (s *Service) RecordCampaignView(ctx context.Context, campaignID string) (int64, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return 0, domain.ErrValidation
	}
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return 0, err
	}
	return s.views.Increment(ctx, campaignID)
}

func (s *Service) ownedCampaign(ctx context.Context, actor Actor, campaignID string) (domain.Campaign, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Campaign{}, domain.ErrUnauthorized
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return domain.Campaign{}, domain.ErrValidation
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	if !actor.isAdmin() && campaign.OwnerID != actor.SubjectID {
		return domain.Campaign{}, domain.ErrForbidden
	}
	return campaign, nil
}
