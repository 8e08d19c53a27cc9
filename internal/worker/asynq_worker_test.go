package worker

import (
	"strings"
	"testing"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
)

func TestBuildOfferStatusNotificationNilOffer(t *testing.T) {
	notifyType, title, body := buildOfferStatusNotification(nil, constants.OfferStatusLive, "")
	if notifyType != "" || title != "" || body != "" {
		t.Fatalf("expected empty notification for nil offer, got type=%q title=%q body=%q", notifyType, title, body)
	}
}

func TestBuildOfferStatusNotificationApproved(t *testing.T) {
	offer := &models.Offer{TitleEn: "Free Dessert", TitleAr: "حلوى مجانية"}

	notifyType, title, body := buildOfferStatusNotification(offer, constants.OfferStatusLive, "")
	if notifyType != constants.NotificationOfferApproved {
		t.Fatalf("unexpected type, want %q, got %q", constants.NotificationOfferApproved, notifyType)
	}
	if title != "Offer approved" {
		t.Fatalf("unexpected title %q", title)
	}
	if !strings.Contains(body, "Free Dessert") {
		t.Fatalf("body should mention the offer title, got %q", body)
	}
}

func TestBuildOfferStatusNotificationRejectedWithReason(t *testing.T) {
	offer := &models.Offer{TitleAr: "حلوى مجانية"}

	notifyType, _, body := buildOfferStatusNotification(offer, constants.OfferStatusRejected, "duplicate of offer 12")
	if notifyType != constants.NotificationOfferRejected {
		t.Fatalf("unexpected type, want %q, got %q", constants.NotificationOfferRejected, notifyType)
	}
	if !strings.Contains(body, "حلوى مجانية") {
		t.Fatalf("body should fall back to the Arabic title, got %q", body)
	}
	if !strings.Contains(body, "duplicate of offer 12") {
		t.Fatalf("body should carry the rejection reason, got %q", body)
	}
}

func TestBuildOfferStatusNotificationUnknownStatus(t *testing.T) {
	offer := &models.Offer{TitleEn: "Free Dessert"}
	notifyType, _, _ := buildOfferStatusNotification(offer, constants.OfferStatusDraft, "")
	if notifyType != "" {
		t.Fatalf("expected no notification for status %q, got type=%q", constants.OfferStatusDraft, notifyType)
	}
}
