package console

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/permissions"
)

type fakeSession struct {
	user *models.User
}

func (s *fakeSession) User() *models.User { return s.user }

func (s *fakeSession) Capabilities() permissions.CapabilitySet { return permissions.ForUser(s.user) }

func sessionFor(role models.Role) *fakeSession {
	return &fakeSession{user: &models.User{ID: "1", Name: "Test User", Role: role}}
}

type mockData struct {
	mock.Mock
}

func (m *mockData) IncomingLinks(ctx context.Context, page models.PageRequest, status models.LinkStatus) (*models.Page[models.Link], error) {
	args := m.Called(ctx, page, status)
	out, _ := args.Get(0).(*models.Page[models.Link])
	return out, args.Error(1)
}

func (m *mockData) UpdateLinkStatus(ctx context.Context, linkID int64, status models.LinkStatus) (*models.Link, error) {
	args := m.Called(ctx, linkID, status)
	out, _ := args.Get(0).(*models.Link)
	return out, args.Error(1)
}

func (m *mockData) BlockLink(ctx context.Context, linkID int64) (*models.Link, error) {
	args := m.Called(ctx, linkID)
	out, _ := args.Get(0).(*models.Link)
	return out, args.Error(1)
}

func (m *mockData) UnblockLink(ctx context.Context, linkID int64) (*models.Link, error) {
	args := m.Called(ctx, linkID)
	out, _ := args.Get(0).(*models.Link)
	return out, args.Error(1)
}

func (m *mockData) UnlinkConsumer(ctx context.Context, linkID int64) (*models.Link, error) {
	args := m.Called(ctx, linkID)
	out, _ := args.Get(0).(*models.Link)
	return out, args.Error(1)
}

func (m *mockData) Orders(ctx context.Context, page models.PageRequest, status models.OrderStatus) (*models.Page[models.Order], error) {
	args := m.Called(ctx, page, status)
	out, _ := args.Get(0).(*models.Page[models.Order])
	return out, args.Error(1)
}

func (m *mockData) Order(ctx context.Context, orderID int64) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	out, _ := args.Get(0).(*models.Order)
	return out, args.Error(1)
}

func (m *mockData) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	out, _ := args.Get(0).(*models.Order)
	return out, args.Error(1)
}

func (m *mockData) Complaints(ctx context.Context, page models.PageRequest, status models.ComplaintStatus) (*models.Page[models.Complaint], error) {
	args := m.Called(ctx, page, status)
	out, _ := args.Get(0).(*models.Page[models.Complaint])
	return out, args.Error(1)
}

func (m *mockData) Complaint(ctx context.Context, complaintID int64) (*models.Complaint, error) {
	args := m.Called(ctx, complaintID)
	out, _ := args.Get(0).(*models.Complaint)
	return out, args.Error(1)
}

func (m *mockData) UpdateComplaintStatus(ctx context.Context, complaintID int64, status models.ComplaintStatus, resolution *string) (*models.Complaint, error) {
	args := m.Called(ctx, complaintID, status, resolution)
	out, _ := args.Get(0).(*models.Complaint)
	return out, args.Error(1)
}

func (m *mockData) ChatSessions(ctx context.Context, page models.PageRequest) (*models.Page[models.ChatSession], error) {
	args := m.Called(ctx, page)
	out, _ := args.Get(0).(*models.Page[models.ChatSession])
	return out, args.Error(1)
}

func (m *mockData) ChatMessages(ctx context.Context, sessionID int64, page models.PageRequest) (*models.Page[models.ChatMessage], error) {
	args := m.Called(ctx, sessionID, page)
	out, _ := args.Get(0).(*models.Page[models.ChatMessage])
	return out, args.Error(1)
}

func (m *mockData) SendMessage(ctx context.Context, sessionID int64, msg models.NewChatMessage) (*models.ChatMessage, error) {
	args := m.Called(ctx, sessionID, msg)
	out, _ := args.Get(0).(*models.ChatMessage)
	return out, args.Error(1)
}

func (m *mockData) MyProducts(ctx context.Context, page models.PageRequest, isActive *bool) (*models.Page[models.Product], error) {
	args := m.Called(ctx, page, isActive)
	out, _ := args.Get(0).(*models.Page[models.Product])
	return out, args.Error(1)
}

func (m *mockData) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*models.Product)
	return out, args.Error(1)
}

func (m *mockData) UpdateProduct(ctx context.Context, productID int64, input models.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, productID, input)
	out, _ := args.Get(0).(*models.Product)
	return out, args.Error(1)
}

func (m *mockData) DeleteProduct(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockData) Staff(ctx context.Context) ([]models.StaffMember, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.StaffMember)
	return out, args.Error(1)
}

func (m *mockData) AddStaff(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockData) RemoveStaff(ctx context.Context, staffID int64) error {
	return m.Called(ctx, staffID).Error(0)
}

func (m *mockData) DeactivateStaff(ctx context.Context, staffID int64) error {
	return m.Called(ctx, staffID).Error(0)
}

func (m *mockData) SupplierProfile(ctx context.Context) (*models.SupplierProfile, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*models.SupplierProfile)
	return out, args.Error(1)
}

func (m *mockData) UpdateSupplierProfile(ctx context.Context, update models.SupplierProfileUpdate) (*models.SupplierProfile, error) {
	args := m.Called(ctx, update)
	out, _ := args.Get(0).(*models.SupplierProfile)
	return out, args.Error(1)
}

func (m *mockData) DeactivateSupplierAccount(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockData) DeleteSupplierAccount(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockData) UserProfile(ctx context.Context) (*models.UserResponse, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*models.UserResponse)
	return out, args.Error(1)
}

func (m *mockData) UpdateUserProfile(ctx context.Context, update models.UserProfileUpdate) (*models.UserResponse, error) {
	args := m.Called(ctx, update)
	out, _ := args.Get(0).(*models.UserResponse)
	return out, args.Error(1)
}

func (m *mockData) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	return m.Called(ctx, change).Error(0)
}

// recordingConfirmer answers every prompt with answer and remembers the prompts
type recordingConfirmer struct {
	answer  bool
	prompts []string
}

func (c *recordingConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, nil
}
