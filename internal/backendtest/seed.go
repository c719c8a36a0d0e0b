package backendtest

import (
	"encoding/json"
	"time"

	"github.com/supplykz/supplier-console/models"
)

// Seeded identifiers
const (
	SupplierID           int64 = 100
	OwnerID              int64 = 1
	ManagerID            int64 = 2
	SalesID              int64 = 3
	ConsumerUserID       int64 = 10
	ConsumerID           int64 = 50
	PendingLinkID        int64 = 1
	AcceptedLinkID       int64 = 2
	BlockedLinkID        int64 = 3
	DeniedLinkID         int64 = 4
	PendingOrderID       int64 = 1
	AcceptedOrderID      int64 = 2
	InProgressOrderID    int64 = 3
	CompletedOrderID     int64 = 4
	OpenComplaintID      int64 = 1
	EscalatedComplaintID int64 = 2
	ResolvedComplaintID  int64 = 3
	ChatSessionID        int64 = 1
)

var seededAt = models.Timestamp{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

func strPtr(s string) *string { return &s }

func (s *Server) seed() {
	logo := "https://cdn.astanafoods.kz/logo.png"
	accounts := []*Account{
		{ID: OwnerID, Email: OwnerEmail, FirstName: "Aigerim", LastName: "Bekova", Role: string(models.RoleSupplierOwner)},
		{ID: ManagerID, Email: ManagerEmail, FirstName: "Daniyar", LastName: "Omarov", Role: string(models.RoleSupplierManager)},
		{ID: SalesID, Email: SalesEmail, FirstName: "Saule", LastName: "Nurlanova", Role: string(models.RoleSupplierSales)},
		{ID: ConsumerUserID, Email: ConsumerEmail, FirstName: "Yerlan", LastName: "Kassymov", Role: string(models.RoleConsumer)},
	}
	for _, a := range accounts {
		a.Password = DefaultPassword
		a.Active = true
		s.accounts[a.Email] = a
	}

	s.supplier = models.SupplierProfile{
		ID:          SupplierID,
		CompanyName: "Astana Foods",
		Description: strPtr("Wholesale groceries for HoReCa"),
		CompanyLogo: &logo,
		IsActive:    true,
		CreatedAt:   seededAt,
	}

	consumer := &models.Consumer{
		ID:               ConsumerID,
		OrganizationName: "Dastarkhan Cafe",
		User:             &models.UserSummary{ID: ConsumerUserID, FirstName: "Yerlan", LastName: "Kassymov", Email: ConsumerEmail},
	}

	for id, status := range map[int64]models.LinkStatus{
		PendingLinkID:  models.LinkStatusPending,
		AcceptedLinkID: models.LinkStatusAccepted,
		BlockedLinkID:  models.LinkStatusBlocked,
		DeniedLinkID:   models.LinkStatusDenied,
	} {
		s.links[id] = &models.Link{
			ID:         id,
			ConsumerID: ConsumerID + id - 1,
			SupplierID: SupplierID,
			Status:     status,
			CreatedAt:  seededAt,
		}
	}
	s.links[PendingLinkID].Consumer = consumer
	s.links[PendingLinkID].Message = strPtr("We would like to order weekly")

	for id, status := range map[int64]models.OrderStatus{
		PendingOrderID:    models.OrderStatusPending,
		AcceptedOrderID:   models.OrderStatusAccepted,
		InProgressOrderID: models.OrderStatusInProgress,
		CompletedOrderID:  models.OrderStatusCompleted,
	} {
		s.orders[id] = &models.Order{
			ID:         id,
			ConsumerID: ConsumerID,
			SupplierID: SupplierID,
			Status:     status,
			TotalKZT:   json.Number("12500.00"),
			CreatedAt:  seededAt,
			Items: []models.OrderItem{{
				ID:           id * 10,
				ProductID:    1,
				Quantity:     5,
				UnitPriceKZT: json.Number("2500.00"),
				Product:      &models.ProductSummary{ID: 1, Name: "Buckwheat 5kg"},
			}},
			Consumer: consumer,
		}
	}

	orderID := PendingOrderID
	for id, status := range map[int64]models.ComplaintStatus{
		OpenComplaintID:      models.ComplaintStatusOpen,
		EscalatedComplaintID: models.ComplaintStatusEscalated,
		ResolvedComplaintID:  models.ComplaintStatusResolved,
	} {
		s.complaints[id] = &models.Complaint{
			ID:          id,
			ConsumerID:  ConsumerID,
			OrderID:     &orderID,
			Status:      status,
			Description: "Two packs of buckwheat arrived torn and the delivery was late by a day",
			CreatedAt:   seededAt,
			Consumer:    consumer,
		}
	}
	s.complaints[ResolvedComplaintID].Resolution = strPtr("Refunded two packs")

	s.sessions[ChatSessionID] = &models.ChatSession{
		ID:          ChatSessionID,
		ConsumerID:  ConsumerID,
		SalesRepID:  SalesID,
		LastMessage: strPtr("Is delivery possible on Sunday?"),
		CreatedAt:   seededAt,
		Consumer:    consumer,
		SalesRep:    &models.UserSummary{ID: SalesID, FirstName: "Saule", LastName: "Nurlanova", Email: SalesEmail},
	}
	s.messages[ChatSessionID] = []models.ChatMessage{
		{ID: 1, SessionID: ChatSessionID, SenderID: ConsumerUserID, Text: "Hello!", CreatedAt: seededAt,
			Sender: consumer.User},
		{ID: 2, SessionID: ChatSessionID, SenderID: ConsumerUserID, Text: "Is delivery possible on Sunday?", CreatedAt: seededAt,
			Sender: consumer.User},
	}

	s.products[1] = &models.Product{
		ID: 1, Name: "Buckwheat 5kg", Description: "Premium buckwheat", Price: json.Number("2500.00"),
		Currency: "KZT", SKU: "BW-5", StockQty: 120, IsActive: true, SupplierID: SupplierID, CreatedAt: seededAt,
	}
	s.products[2] = &models.Product{
		ID: 2, Name: "Sunflower oil 1L", Price: json.Number("900.00"),
		Currency: "KZT", SKU: "OIL-1", StockQty: 0, IsActive: false, SupplierID: SupplierID, CreatedAt: seededAt,
	}
}
