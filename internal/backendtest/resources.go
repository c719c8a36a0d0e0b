package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/supplykz/supplier-console/models"
)

func currentRole(r *http.Request) models.Role {
	a := accountFromContext(r.Context())
	if a == nil {
		return models.RoleUnknown
	}
	return models.ParseRole(a.Role)
}

// requireRole answers 403 unless the caller has one of the roles
func requireRole(w http.ResponseWriter, r *http.Request, roles ...models.Role) bool {
	role := currentRole(r)
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	writeForbidden(w)
	return false
}

func requireStaff(w http.ResponseWriter, r *http.Request) bool {
	return requireRole(w, r, models.RoleSupplierOwner, models.RoleSupplierManager, models.RoleSupplierSales)
}

func requireManagement(w http.ResponseWriter, r *http.Request) bool {
	return requireRole(w, r, models.RoleSupplierOwner, models.RoleSupplierManager)
}

func requireOwner(w http.ResponseWriter, r *http.Request) bool {
	return requireRole(w, r, models.RoleSupplierOwner)
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	status := models.LinkStatus(r.URL.Query().Get("status"))

	s.mu.Lock()
	defer s.mu.Unlock()
	items := sortedValues(s.links, func(l *models.Link) bool {
		return status == "" || l.Status == status
	})
	writeOK(w, paginate(r, items, models.DefaultPageSize))
}

func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeNotFound(w, "Link")
		return
	}
	var req models.LinkStatusUpdate
	if !decode(w, r, &req) {
		return
	}
	if !req.Status.IsValid() {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("Invalid link status %q", req.Status))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, found := s.links[id]
	if !found {
		writeNotFound(w, "Link")
		return
	}
	answeringRequest := link.Status == models.LinkStatusPending &&
		(req.Status == models.LinkStatusAccepted || req.Status == models.LinkStatusDenied)
	if !answeringRequest && !requireManagement(w, r) {
		return
	}
	link.Status = req.Status
	writeOK(w, link)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	status := models.OrderStatus(r.URL.Query().Get("status"))

	s.mu.Lock()
	defer s.mu.Unlock()
	items := sortedValues(s.orders, func(o *models.Order) bool {
		return status == "" || o.Status == status
	})
	writeOK(w, paginate(r, items, models.DefaultPageSize))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	id, _ := pathID(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	order, found := s.orders[id]
	if !found {
		writeNotFound(w, "Order")
		return
	}
	writeOK(w, order)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	if !requireManagement(w, r) {
		return
	}
	id, _ := pathID(r, "id")
	var req models.OrderStatusUpdate
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, found := s.orders[id]
	if !found {
		writeNotFound(w, "Order")
		return
	}
	if !order.Status.CanTransitionTo(req.Status) {
		writeDetail(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("Cannot change order status from %s to %s", order.Status, req.Status))
		return
	}
	order.Status = req.Status
	writeOK(w, order)
}

var complaintTransitions = map[models.ComplaintStatus][]models.ComplaintStatus{
	models.ComplaintStatusOpen:      {models.ComplaintStatusEscalated, models.ComplaintStatusResolved},
	models.ComplaintStatusEscalated: {models.ComplaintStatusResolved},
}

func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	status := models.ComplaintStatus(r.URL.Query().Get("status"))

	s.mu.Lock()
	defer s.mu.Unlock()
	items := sortedValues(s.complaints, func(c *models.Complaint) bool {
		return status == "" || c.Status == status
	})
	writeOK(w, paginate(r, items, models.DefaultPageSize))
}

func (s *Server) handleGetComplaint(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	id, _ := pathID(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	complaint, found := s.complaints[id]
	if !found {
		writeNotFound(w, "Complaint")
		return
	}
	writeOK(w, complaint)
}

func (s *Server) handleUpdateComplaint(w http.ResponseWriter, r *http.Request) {
	if !requireManagement(w, r) {
		return
	}
	id, _ := pathID(r, "id")
	var req models.ComplaintStatusUpdate
	if !decode(w, r, &req) {
		return
	}
	if req.Status == models.ComplaintStatusResolved && (req.Resolution == nil || strings.TrimSpace(*req.Resolution) == "") {
		writeDetail(w, http.StatusUnprocessableEntity, "Resolution is required to resolve a complaint")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	complaint, found := s.complaints[id]
	if !found {
		writeNotFound(w, "Complaint")
		return
	}
	allowed := false
	for _, next := range complaintTransitions[complaint.Status] {
		if next == req.Status {
			allowed = true
		}
	}
	if !allowed {
		writeDetail(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("Cannot change complaint status from %s to %s", complaint.Status, req.Status))
		return
	}
	complaint.Status = req.Status
	if req.Resolution != nil {
		complaint.Resolution = req.Resolution
	}
	writeOK(w, complaint)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeOK(w, paginate(r, sortedValues(s.sessions, nil), models.DefaultPageSize))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	var req models.NewChatSession
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session := &models.ChatSession{
		ID:         s.newID(),
		ConsumerID: ConsumerID,
		SalesRepID: req.SalesRepID,
		OrderID:    req.OrderID,
		CreatedAt:  models.Timestamp{Time: time.Now().UTC()},
	}
	s.sessions[session.ID] = session
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	id, _ := pathID(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.sessions[id]; !found {
		writeNotFound(w, "Chat session")
		return
	}
	writeOK(w, paginate(r, s.messages[id], 50))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	id, _ := pathID(r, "id")
	var req models.NewChatMessage
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Message text is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, found := s.sessions[id]
	if !found {
		writeNotFound(w, "Chat session")
		return
	}
	sender := accountFromContext(r.Context())
	msg := models.ChatMessage{
		ID:        s.newID(),
		SessionID: id,
		SenderID:  sender.ID,
		Text:      req.Text,
		FileURL:   req.FileURL,
		CreatedAt: models.Timestamp{Time: time.Now().UTC()},
		Sender:    &models.UserSummary{ID: sender.ID, FirstName: sender.FirstName, LastName: sender.LastName, Email: sender.Email},
	}
	s.messages[id] = append(s.messages[id], msg)
	session.LastMessage = &msg.Text
	writeJSON(w, http.StatusCreated, msg)
}

// staffAccounts must be called with s.mu held
func (s *Server) staffAccounts() []models.StaffMember {
	out := make([]models.StaffMember, 0)
	for _, a := range s.accounts {
		role := models.ParseRole(a.Role)
		if !role.IsSupplierStaff() {
			continue
		}
		out = append(out, models.StaffMember{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Email:     a.Email,
			Role:      strings.TrimPrefix(a.Role, "supplier_"),
			IsActive:  a.Active,
			CreatedAt: seededAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeOK(w, s.staffAccounts())
}

// staffAccount must be called with s.mu held
func (s *Server) staffAccount(w http.ResponseWriter, r *http.Request) (*Account, bool) {
	id, _ := pathID(r, "id")
	if caller := accountFromContext(r.Context()); caller.ID == id {
		writeDetail(w, http.StatusBadRequest, "You cannot change your own staff account")
		return nil, false
	}
	for _, a := range s.accounts {
		if a.ID == id && models.ParseRole(a.Role).IsSupplierStaff() {
			return a, true
		}
	}
	writeNotFound(w, "Staff member")
	return nil, false
}

func (s *Server) handleRemoveStaff(w http.ResponseWriter, r *http.Request) {
	if !requireOwner(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.staffAccount(w, r)
	if !ok {
		return
	}
	delete(s.accounts, a.Email)
	writeNoContent(w)
}

func (s *Server) handleDeactivateStaff(w http.ResponseWriter, r *http.Request) {
	if !requireOwner(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.staffAccount(w, r)
	if !ok {
		return
	}
	a.Active = false
	writeOK(w, map[string]string{"message": "Staff member deactivated"})
}

func (s *Server) handleGetSupplier(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeOK(w, s.supplier)
}

func (s *Server) handleUpdateSupplier(w http.ResponseWriter, r *http.Request) {
	if !requireOwner(w, r) {
		return
	}
	var req models.SupplierProfileUpdate
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.CompanyName != nil {
		s.supplier.CompanyName = *req.CompanyName
	}
	if req.Description != nil {
		s.supplier.Description = req.Description
	}
	if req.CompanyLogo != nil {
		s.supplier.CompanyLogo = req.CompanyLogo
	}
	writeOK(w, s.supplier)
}

func (s *Server) handleDeactivateSupplier(w http.ResponseWriter, r *http.Request) {
	if !requireOwner(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplier.IsActive = false
	writeOK(w, map[string]string{"message": "Supplier account deactivated"})
}

func (s *Server) handleDeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if !requireOwner(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplier = models.SupplierProfile{}
	writeNoContent(w)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}
	var active *bool
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "is_active must be a boolean")
			return
		}
		active = &v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := sortedValues(s.products, func(p *models.Product) bool {
		return active == nil || p.IsActive == *active
	})
	writeOK(w, paginate(r, items, models.DefaultPageSize))
}

func applyProductInput(p *models.Product, in models.ProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = json.Number(strconv.FormatFloat(in.Price, 'f', 2, 64))
	p.Currency = in.Currency
	p.SKU = in.SKU
	p.StockQty = in.StockQty
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (models.ProductInput, bool) {
	var in models.ProductInput
	if !decode(w, r, &in) {
		return in, false
	}
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 || in.StockQty < 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid product")
		return in, false
	}
	return in, true
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireManagement(w, r) {
		return
	}
	in, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Product{
		ID:         s.newID(),
		IsActive:   true,
		SupplierID: SupplierID,
		CreatedAt:  models.Timestamp{Time: time.Now().UTC()},
	}
	applyProductInput(p, in)
	s.products[p.ID] = p
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireManagement(w, r) {
		return
	}
	id, _ := pathID(r, "id")
	in, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.products[id]
	if !found {
		writeNotFound(w, "Product")
		return
	}
	applyProductInput(p, in)
	writeOK(w, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !requireManagement(w, r) {
		return
	}
	id, _ := pathID(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[id]; !found {
		writeNotFound(w, "Product")
		return
	}
	delete(s.products, id)
	writeNoContent(w)
}
