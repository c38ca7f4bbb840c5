// Package fakeapi is an in-process stand-in for the BiteDash backend,
// implementing the slice of the REST contract the client core consumes.
// Tests mount it on httptest and point the api.Client at it.
package fakeapi

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iamkibet/bitedash-app-sub000/entity"
	"github.com/iamkibet/bitedash-app-sub000/pkg/resp"
	"github.com/iamkibet/bitedash-app-sub000/utils"
)

const pageSize = 15

type paymentRec struct {
	orderID uint
	ticks   int
}

type Server struct {
	Secret      string
	DeliveryFee decimal.Decimal

	// VerifyAfter is how many verify calls answer "pending" before the
	// reference settles. Negative means it never settles.
	VerifyAfter int
	// LegacyVerifyShape makes verify answer {"status":"completed"} instead
	// of {"payment_status":"paid"}; the real backend does both.
	LegacyVerifyShape bool

	mu       sync.Mutex
	nextID   uint
	Menus    map[uint]entity.MenuItem
	Orders   map[uint]*entity.Order
	payments map[string]*paymentRec
}

func NewServer(secret string) *Server {
	return &Server{
		Secret:      secret,
		DeliveryFee: decimal.NewFromInt(50),
		Menus:       map[uint]entity.MenuItem{},
		Orders:      map[uint]*entity.Order{},
		payments:    map[string]*paymentRec{},
	}
}

func (s *Server) SeedMenu(items ...entity.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range items {
		s.Menus[m.ID] = m
	}
}

func (s *Server) SeedOrder(o entity.Order) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	o.ID = s.nextID
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.Orders[o.ID] = &o
	return o.ID
}

// TokenFor signs a bearer token the middleware will accept.
func (s *Server) TokenFor(userID uint, role entity.Role) string {
	tok, _ := utils.GenerateToken(userID, string(role), s.Secret, time.Hour)
	return tok
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/orders", s.authRequired("customer"), s.createOrder)
	r.GET("/orders", s.authRequired("customer"), s.listMyOrders)
	r.GET("/orders/available", s.authRequired("rider"), s.listAvailable)
	r.GET("/orders/my-rider", s.authRequired("rider"), s.listRiderOrders)
	r.GET("/orders/:id", s.authRequired(), s.getOrder)
	r.PUT("/orders/:id", s.authRequired(), s.updateOrder)
	r.POST("/orders/:id/cancel", s.authRequired("customer"), s.cancelOrder)
	r.POST("/orders/:id/accept", s.authRequired("rider"), s.acceptOrder)
	r.POST("/orders/:id/payments/initiate", s.authRequired("customer"), s.initiatePayment)
	r.GET("/payments/:reference/verify", s.authRequired(), s.verifyPayment)

	r.GET("/stores/:id/orders", s.authRequired("restaurant"), s.listStoreOrders)

	return r
}

// ----- Orders -----

type createOrderReq struct {
	RestaurantID uint `json:"restaurant_id"`
	Items        []struct {
		MenuItemID uint `json:"menu_item_id"`
		Quantity   int  `json:"quantity"`
	} `json:"items"`
	DeliveryAddress string `json:"delivery_address"`
	Notes           string `json:"notes"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Message(c, 400, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		resp.Validation(c, "The given data was invalid.", map[string][]string{
			"items": {"The items field is required."},
		})
		return
	}
	if req.DeliveryAddress != "" && len(req.DeliveryAddress) < 5 {
		resp.Validation(c, "The given data was invalid.", map[string][]string{
			"delivery_address": {"The delivery address must be at least 5 characters."},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.DeliveryFee
	var lines []entity.OrderItem
	for _, it := range req.Items {
		m, ok := s.Menus[it.MenuItemID]
		if !ok || m.RestaurantID != req.RestaurantID {
			resp.Validation(c, "The given data was invalid.", map[string][]string{
				"items": {"One or more items do not belong to this restaurant."},
			})
			return
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, entity.OrderItem{
			MenuItemID: m.ID, Name: m.Name, Quantity: qty, UnitPrice: m.Price,
		})
		total = total.Add(m.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	s.nextID++
	o := &entity.Order{
		ID:              s.nextID,
		UserID:          currentUserID(c),
		RestaurantID:    req.RestaurantID,
		TotalAmount:     total,
		Status:          entity.StatusPending,
		PaymentStatus:   entity.PaymentUnpaid,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		OrderItems:      lines,
		CreatedAt:       time.Now(),
	}
	s.Orders[o.ID] = o
	resp.Created(c, o)
}

func (s *Server) findOrder(c *gin.Context) *entity.Order {
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Orders[uint(id)]
}

func (s *Server) getOrder(c *gin.Context) {
	o := s.findOrder(c)
	if o == nil {
		resp.NotFound(c, "Order not found.")
		return
	}
	if currentRole(c) == "customer" && o.UserID != currentUserID(c) {
		resp.NotFound(c, "Order not found.")
		return
	}
	resp.OK(c, o)
}

type updateOrderReq struct {
	Status  *entity.OrderStatus `json:"status"`
	RiderID *uint               `json:"rider_id"`
}

func (s *Server) updateOrder(c *gin.Context) {
	o := s.findOrder(c)
	if o == nil {
		resp.NotFound(c, "Order not found.")
		return
	}
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Message(c, 400, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	role := currentRole(c)
	if req.RiderID != nil {
		if role != "restaurant" {
			resp.Forbidden(c, "Only the restaurant can assign a rider.")
			return
		}
		if o.RiderID != nil {
			resp.Forbidden(c, "Order already has a rider.")
			return
		}
		rid := *req.RiderID
		o.RiderID = &rid
	}

	if req.Status != nil {
		to := *req.Status
		if !to.Valid() {
			resp.Validation(c, "The given data was invalid.", map[string][]string{
				"status": {"The selected status is invalid."},
			})
			return
		}
		if !o.Status.CanBecome(to) {
			resp.Validation(c, "The given data was invalid.", map[string][]string{
				"status": {"Invalid status transition."},
			})
			return
		}
		switch to {
		case entity.StatusPreparing, entity.StatusOnTheWay:
			if role != "restaurant" {
				resp.Forbidden(c, "You are not allowed to update this order.")
				return
			}
		case entity.StatusDelivered:
			if role != "rider" || o.RiderID == nil || *o.RiderID != currentUserID(c) {
				resp.Forbidden(c, "You are not the assigned rider for this order.")
				return
			}
		default:
			resp.Forbidden(c, "You are not allowed to update this order.")
			return
		}
		o.Status = to
	}

	resp.OK(c, o)
}

func (s *Server) cancelOrder(c *gin.Context) {
	o := s.findOrder(c)
	if o == nil || o.UserID != currentUserID(c) {
		resp.NotFound(c, "Order not found.")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.PaymentStatus == entity.PaymentPaid {
		resp.Forbidden(c, "Paid orders cannot be cancelled.")
		return
	}
	if o.Status != entity.StatusPending {
		resp.Forbidden(c, "Order can no longer be cancelled.")
		return
	}
	o.Status = entity.StatusCancelled
	resp.OK(c, o)
}

func (s *Server) acceptOrder(c *gin.Context) {
	o := s.findOrder(c)
	if o == nil {
		resp.NotFound(c, "Order not found.")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.Status.Terminal() {
		resp.Forbidden(c, "Order is no longer available.")
		return
	}
	if o.RiderID != nil {
		resp.Forbidden(c, "Order already taken.")
		return
	}
	rid := currentUserID(c)
	o.RiderID = &rid
	resp.OK(c, o)
}

// ----- Listings -----

func (s *Server) listMyOrders(c *gin.Context) {
	uid := currentUserID(c)
	s.paginate(c, func(o *entity.Order) bool { return o.UserID == uid })
}

func (s *Server) listAvailable(c *gin.Context) {
	s.paginate(c, func(o *entity.Order) bool {
		return o.RiderID == nil && !o.Status.Terminal()
	})
}

func (s *Server) listRiderOrders(c *gin.Context) {
	rid := currentUserID(c)
	s.paginate(c, func(o *entity.Order) bool { return o.AssignedTo(rid) })
}

func (s *Server) listStoreOrders(c *gin.Context) {
	storeID, _ := strconv.Atoi(c.Param("id"))
	s.paginate(c, func(o *entity.Order) bool { return o.RestaurantID == uint(storeID) })
}

func (s *Server) paginate(c *gin.Context, keep func(*entity.Order) bool) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	var all []entity.Order
	for _, o := range s.Orders {
		if keep(o) {
			all = append(all, *o)
		}
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := len(all)
	lastPage := (total + pageSize - 1) / pageSize
	if lastPage < 1 {
		lastPage = 1
	}
	lo := (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi := lo + pageSize
	if hi > total {
		hi = total
	}

	resp.OK(c, gin.H{
		"data":         all[lo:hi],
		"current_page": page,
		"last_page":    lastPage,
		"total":        total,
	})
}

// ----- Payments -----

func (s *Server) initiatePayment(c *gin.Context) {
	o := s.findOrder(c)
	if o == nil || o.UserID != currentUserID(c) {
		resp.NotFound(c, "Order not found.")
		return
	}
	var req struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !utils.ValidPhone(req.PhoneNumber) {
		resp.Validation(c, "The given data was invalid.", map[string][]string{
			"phone_number": {"The phone number must be a valid Kenyan number."},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if o.PaymentStatus == entity.PaymentPaid {
		resp.Message(c, 400, "Order is already paid.")
		return
	}

	ref := uuid.NewString()
	s.payments[ref] = &paymentRec{orderID: o.ID}
	resp.OK(c, gin.H{
		"message":   "STK push sent. Enter your M-PESA PIN to complete payment.",
		"reference": ref,
	})
}

func (s *Server) verifyPayment(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.payments[c.Param("reference")]
	if !ok {
		resp.NotFound(c, "Unknown payment reference.")
		return
	}
	rec.ticks++
	if s.VerifyAfter < 0 || rec.ticks <= s.VerifyAfter {
		resp.OK(c, gin.H{"status": "pending"})
		return
	}

	if o := s.Orders[rec.orderID]; o != nil {
		o.PaymentStatus = entity.PaymentPaid
	}
	if s.LegacyVerifyShape {
		resp.OK(c, gin.H{"status": "completed"})
		return
	}
	resp.OK(c, gin.H{"payment_status": "paid"})
}

// VerifyCalls reports how many verify requests reference has received.
func (s *Server) VerifyCalls(reference string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.payments[reference]; ok {
		return rec.ticks
	}
	return 0
}
