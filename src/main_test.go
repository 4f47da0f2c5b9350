package main

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fluxtrail/src/config"
	"fluxtrail/src/services"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type APISuite struct {
	suite.Suite

	adminRouter *gin.Engine
	mainRouter  *gin.Engine

	routeStore  *services.MemoryRouteStore
	ticketStore *services.MemoryTicketStore
	ledger      *services.StaticLedger

	adminKey     ed25519.PrivateKey
	adminAddress string
	buyerAddress string
	token        string
}

func generateAddress(t *testing.T) (ed25519.PrivateKey, string) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	assert.Nil(t, err)
	var addr sdktypes.Address
	copy(addr[:], pub)
	return priv, addr.String()
}

func signedSelfPayment(t *testing.T, priv ed25519.PrivateKey, address string) string {
	t.Helper()
	addr, err := sdktypes.DecodeAddress(address)
	assert.Nil(t, err)

	txn := sdktypes.Transaction{
		Type: sdktypes.PaymentTx,
		Header: sdktypes.Header{
			Sender:     addr,
			Fee:        1000,
			FirstValid: 1,
			LastValid:  1000,
			GenesisID:  "testnet-v1.0",
		},
		PaymentTxnFields: sdktypes.PaymentTxnFields{
			Receiver: addr,
		},
	}
	sig := ed25519.Sign(priv, append([]byte("TX"), msgpack.Encode(&txn)...))

	stxn := sdktypes.SignedTxn{Txn: txn}
	copy(stxn.Sig[:], sig)
	return base64.StdEncoding.EncodeToString(msgpack.Encode(&stxn))
}

func (s *APISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	registerValidators()

	s.adminKey, s.adminAddress = generateAddress(s.T())
	_, s.buyerAddress = generateAddress(s.T())

	cfg := &config.Config{
		AdminAddress:   s.adminAddress,
		AdminJWTSecret: "test-secret",
	}

	s.routeStore = services.NewMemoryRouteStore()
	s.ticketStore = services.NewMemoryTicketStore()
	s.ledger = services.NewStaticLedger()

	authService := services.NewAuthService(cfg)
	routeService := services.NewRouteService(s.routeStore)
	ticketService := services.NewTicketService(s.ticketStore, s.routeStore, s.ledger)
	statsService := services.NewStatsService(s.ticketStore, s.routeStore)

	s.adminRouter = setupRouter()
	adminHandlers(s.adminRouter.Group("/flux-trail/admin"), authService, routeService, ticketService, statsService)

	s.mainRouter = setupRouter()
	fluxTrailHandlers(s.mainRouter.Group("/flux-trail"), ticketService, routeService)

	res := s.request(s.adminRouter, http.MethodPost, "/flux-trail/admin/auth/login", gin.H{
		"authTxnBase64": signedSelfPayment(s.T(), s.adminKey, s.adminAddress),
	}, "")
	s.Require().Equal(http.StatusOK, res.Code)
	s.token = gjson.Get(res.Body.String(), "accessToken").String()
	s.Require().NotEmpty(s.token)
}

func (s *APISuite) request(router *gin.Engine, method string, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().Nil(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func (s *APISuite) admin(method string, path string, body any) *httptest.ResponseRecorder {
	return s.request(s.adminRouter, method, path, body, s.token)
}

func (s *APISuite) public(method string, path string, body any) *httptest.ResponseRecorder {
	return s.request(s.mainRouter, method, path, body, "")
}

func (s *APISuite) createRoute(appID uint64, price float64) string {
	res := s.admin(http.MethodPost, "/flux-trail/admin/route", gin.H{
		"appId":           appID,
		"price":           price,
		"transportMedium": "BUS",
		"from":            "Lagos",
		"fromStateCode":   "LA",
		"fromTerminal":    "Ojota",
		"to":              "Ibadan",
		"toStateCode":     "OY",
		"toTerminal":      "Challenge",
	})
	s.Require().Equal(http.StatusCreated, res.Code, res.Body.String())
	return gjson.Get(res.Body.String(), "id").String()
}

func (s *APISuite) createTicket(routeID string, assetID uint64, buyer string) string {
	s.ledger.Assets[assetID] = true
	s.ledger.Hold(buyer, assetID)
	res := s.public(http.MethodPost, "/flux-trail/ticket", gin.H{
		"assetId":        assetID,
		"buyerAddress":   buyer,
		"routeId":        routeID,
		"departureDate":  "2025-05-01",
		"numberOfAdults": 2,
		"ipfsUrl":        fmt.Sprintf("ipfs://ticket-%d", assetID),
	})
	s.Require().Equal(http.StatusCreated, res.Code, res.Body.String())
	return gjson.Get(res.Body.String(), "id").String()
}

func (s *APISuite) TestLogin() {
	s.Run("rejects an unsigned body", func() {
		res := s.request(s.adminRouter, http.MethodPost, "/flux-trail/admin/auth/login", gin.H{}, "")
		s.Equal(http.StatusBadRequest, res.Code)
	})

	s.Run("rejects a transaction signed by another key", func() {
		otherKey, otherAddress := generateAddress(s.T())
		res := s.request(s.adminRouter, http.MethodPost, "/flux-trail/admin/auth/login", gin.H{
			"authTxnBase64": signedSelfPayment(s.T(), otherKey, otherAddress),
		}, "")
		s.Equal(http.StatusUnauthorized, res.Code)
	})

	s.Run("issues a session for the admin", func() {
		res := s.request(s.adminRouter, http.MethodPost, "/flux-trail/admin/auth/login", gin.H{
			"authTxnBase64": signedSelfPayment(s.T(), s.adminKey, s.adminAddress),
		}, "")
		s.Equal(http.StatusOK, res.Code)
		body := res.Body.String()
		s.NotEmpty(gjson.Get(body, "accessToken").String())
		s.Equal(int64(86400), gjson.Get(body, "expiresIn").Int())
	})
}

func (s *APISuite) TestAdminRequiresBearerToken() {
	res := s.request(s.adminRouter, http.MethodGet, "/flux-trail/admin/routes", nil, "")
	s.Equal(http.StatusUnauthorized, res.Code)

	res = s.request(s.adminRouter, http.MethodGet, "/flux-trail/admin/routes", nil, "not-a-token")
	s.Equal(http.StatusUnauthorized, res.Code)
}

func (s *APISuite) TestRouteLifecycle() {
	routeID := s.createRoute(1001, 20)

	s.Run("duplicate appId conflicts", func() {
		res := s.admin(http.MethodPost, "/flux-trail/admin/route", gin.H{
			"appId":           1001,
			"price":           20,
			"transportMedium": "BUS",
			"from":            "Lagos",
			"fromStateCode":   "LA",
			"fromTerminal":    "Ojota",
			"to":              "Ibadan",
			"toStateCode":     "OY",
			"toTerminal":      "Challenge",
		})
		s.Equal(http.StatusConflict, res.Code)
		s.Equal("Route already exists", gjson.Get(res.Body.String(), "error").String())
	})

	s.Run("rejects an unknown transport medium", func() {
		res := s.admin(http.MethodPost, "/flux-trail/admin/route", gin.H{
			"appId":           1002,
			"price":           20,
			"transportMedium": "ROCKET",
			"from":            "Lagos",
			"fromStateCode":   "LA",
			"fromTerminal":    "Ojota",
			"to":              "Ibadan",
			"toStateCode":     "OY",
			"toTerminal":      "Challenge",
		})
		s.Equal(http.StatusBadRequest, res.Code)
	})

	s.Run("gets a route by id", func() {
		res := s.admin(http.MethodGet, "/flux-trail/admin/route/"+routeID, nil)
		s.Equal(http.StatusOK, res.Code)
		s.Equal(int64(1001), gjson.Get(res.Body.String(), "appId").Int())
	})

	s.Run("rejects a malformed route id", func() {
		res := s.admin(http.MethodGet, "/flux-trail/admin/route/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, res.Code)
	})

	s.Run("lists routes with pagination metadata", func() {
		res := s.admin(http.MethodGet, "/flux-trail/admin/routes?page=1&numOfItemsPerPage=5", nil)
		s.Equal(http.StatusOK, res.Code)
		body := res.Body.String()
		s.True(gjson.Get(body, "data").IsArray())
		s.Equal(int64(1), gjson.Get(body, "pagination.page").Int())
		s.Equal(int64(5), gjson.Get(body, "pagination.numOfItemsPerPage").Int())
	})

	s.Run("rejects a bad order value", func() {
		res := s.admin(http.MethodGet, "/flux-trail/admin/routes?order=sideways", nil)
		s.Equal(http.StatusBadRequest, res.Code)
	})

	s.Run("patches a route partially", func() {
		res := s.admin(http.MethodPatch, "/flux-trail/admin/route/"+routeID, gin.H{"price": 35})
		s.Equal(http.StatusOK, res.Code)
		body := res.Body.String()
		s.Equal(float64(35), gjson.Get(body, "price").Float())
		s.Equal("Lagos", gjson.Get(body, "from").String())
	})

	s.Run("deletes a route", func() {
		res := s.admin(http.MethodDelete, "/flux-trail/admin/route/"+routeID, nil)
		s.Equal(http.StatusOK, res.Code)
		s.Equal("Route deleted successfully", gjson.Get(res.Body.String(), "message").String())

		res = s.admin(http.MethodGet, "/flux-trail/admin/route/"+routeID, nil)
		s.Equal(http.StatusNotFound, res.Code)

		res = s.admin(http.MethodDelete, "/flux-trail/admin/route/"+routeID, nil)
		s.Equal(http.StatusNotFound, res.Code)
	})
}

func (s *APISuite) TestTicketLifecycle() {
	routeID := s.createRoute(2001, 20)
	ticketID := s.createTicket(routeID, 5001, s.buyerAddress)

	s.Run("rejects a duplicate asset id", func() {
		res := s.public(http.MethodPost, "/flux-trail/ticket", gin.H{
			"assetId":       5001,
			"buyerAddress":  s.buyerAddress,
			"routeId":       routeID,
			"departureDate": "2025-05-01",
			"ipfsUrl":       "ipfs://dup",
		})
		s.Equal(http.StatusConflict, res.Code)
		s.Equal("Ticket already exists", gjson.Get(res.Body.String(), "error").String())
	})

	s.Run("rejects a malformed buyer address at binding", func() {
		res := s.public(http.MethodPost, "/flux-trail/ticket", gin.H{
			"assetId":       5002,
			"buyerAddress":  "not-an-address",
			"routeId":       routeID,
			"departureDate": "2025-05-01",
			"ipfsUrl":       "ipfs://bad",
		})
		s.Equal(http.StatusBadRequest, res.Code)
	})

	s.Run("resolves a ticket by asset id", func() {
		res := s.public(http.MethodGet, "/flux-trail/ticket/5001", nil)
		s.Equal(http.StatusOK, res.Code)
		body := res.Body.String()
		s.Equal(ticketID, gjson.Get(body, "id").String())
		s.Equal(float64(20), gjson.Get(body, "price").Float())
		s.False(gjson.Get(body, "used").Bool())
	})

	s.Run("only the holder can use the ticket", func() {
		_, stranger := generateAddress(s.T())
		res := s.public(http.MethodPost, "/flux-trail/ticket/use", gin.H{
			"ticketId":     ticketID,
			"ownerAddress": stranger,
		})
		s.Equal(http.StatusForbidden, res.Code)
	})

	s.Run("the holder uses the ticket once", func() {
		res := s.public(http.MethodPost, "/flux-trail/ticket/use", gin.H{
			"ticketId":     ticketID,
			"ownerAddress": s.buyerAddress,
		})
		s.Equal(http.StatusOK, res.Code)
		s.True(gjson.Get(res.Body.String(), "used").Bool())

		res = s.public(http.MethodPost, "/flux-trail/ticket/use", gin.H{
			"ticketId":     ticketID,
			"ownerAddress": s.buyerAddress,
		})
		s.Equal(http.StatusForbidden, res.Code)
		s.Equal("Ticket has already been used", gjson.Get(res.Body.String(), "error").String())
	})

	s.Run("cannot burn while the asset exists", func() {
		res := s.public(http.MethodDelete, "/flux-trail/ticket/burn", gin.H{
			"ticketId":     ticketID,
			"ownerAddress": s.buyerAddress,
		})
		s.Equal(http.StatusForbidden, res.Code)
	})

	s.Run("burns once the asset is destroyed", func() {
		s.ledger.Assets[5001] = false
		res := s.public(http.MethodDelete, "/flux-trail/ticket/burn", gin.H{
			"ticketId":     ticketID,
			"ownerAddress": s.buyerAddress,
		})
		s.Equal(http.StatusOK, res.Code)
		s.Equal("Ticket burned successfully", gjson.Get(res.Body.String(), "message").String())

		res = s.public(http.MethodGet, "/flux-trail/ticket/5001", nil)
		s.Equal(http.StatusNotFound, res.Code)
	})
}

func (s *APISuite) TestListTicketsByBuyer() {
	routeID := s.createRoute(3001, 15)
	_, buyer := generateAddress(s.T())
	for i := uint64(0); i < 3; i++ {
		s.createTicket(routeID, 6001+i, buyer)
	}

	res := s.public(http.MethodGet, "/flux-trail/tickets/"+buyer, nil)
	s.Equal(http.StatusOK, res.Code)
	body := res.Body.String()
	s.Equal(int64(3), gjson.Get(body, "pagination.itemCount").Int())
	s.Len(gjson.Get(body, "data").Array(), 3)
	s.Equal(buyer, gjson.Get(body, "data.0.buyerAddress").String())

	s.Run("rejects a malformed address", func() {
		res := s.public(http.MethodGet, "/flux-trail/tickets/not-an-address", nil)
		s.Equal(http.StatusBadRequest, res.Code)
	})
}

func (s *APISuite) TestPublicRoutesList() {
	s.createRoute(4001, 10)
	res := s.public(http.MethodGet, "/flux-trail/routes", nil)
	s.Equal(http.StatusOK, res.Code)
	s.True(gjson.Parse(res.Body.String()).IsArray())
}

func (s *APISuite) TestAdminTickets() {
	routeID := s.createRoute(7001, 25)
	_, buyer := generateAddress(s.T())
	ticketID := s.createTicket(routeID, 8001, buyer)

	s.Run("gets a ticket by id", func() {
		res := s.admin(http.MethodGet, "/flux-trail/admin/ticket/"+ticketID, nil)
		s.Equal(http.StatusOK, res.Code)
		s.Equal(int64(8001), gjson.Get(res.Body.String(), "assetId").Int())
	})

	s.Run("lists all tickets", func() {
		res := s.admin(http.MethodGet, "/flux-trail/admin/tickets?numOfItemsPerPage=50", nil)
		s.Equal(http.StatusOK, res.Code)
		s.True(gjson.Get(res.Body.String(), "pagination.itemCount").Int() >= 1)
	})

	s.Run("computes statistics", func() {
		res := s.admin(http.MethodGet, "/flux-trail/admin/tickets/statistics", nil)
		s.Equal(http.StatusOK, res.Code)
		body := res.Body.String()
		s.True(gjson.Get(body, "totalTickets").Int() >= 1)
		s.True(gjson.Get(body, "totalRoutes").Int() >= 1)
		s.True(gjson.Get(body, "totalRevenue").Float() >= 25*2)
	})
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
