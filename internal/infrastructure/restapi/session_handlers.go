package restapi

import (
	"net/http"

	"solfolio/internal/app/service"
	"solfolio/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// SessionResponse is the wire shape of a session snapshot.
type SessionResponse struct {
	Data          entity.SessionSnapshot `json:"data"`
	StatusMessage string                 `json:"status_message"`
}

// ErrorResponse is the wire shape of a failed operation.
type ErrorResponse struct {
	Error      string `json:"error"`
	InstallURL string `json:"install_url,omitempty"`
}

// SessionHandler serves the wallet-session endpoints.
type SessionHandler struct {
	session *service.Session
}

// NewSessionHandler creates a handler over the given session.
func NewSessionHandler(session *service.Session) *SessionHandler {
	return &SessionHandler{session: session}
}

// GetSessionHandler returns the current session snapshot.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	snapshot := h.session.Snapshot()

	message := "Session retrieved."
	if !snapshot.Connected {
		message = "No wallet connected."
	} else if snapshot.Loading {
		message = "Session connected, portfolio refresh in progress."
	}

	c.JSON(http.StatusOK, SessionResponse{Data: snapshot, StatusMessage: message})
}

// ConnectHandler connects the wallet provider and runs an initial fetch.
func (h *SessionHandler) ConnectHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.session.Connect(ctx); err != nil {
		if unavailable, ok := entity.IsProviderUnavailable(err); ok {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error:      err.Error(),
				InstallURL: unavailable.InstallURL,
			})
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Data:          h.session.Snapshot(),
		StatusMessage: "Wallet connected.",
	})
}

// DisconnectHandler resets the session. The reset succeeds even when the
// provider call does not, so the response is always a disconnected snapshot.
func (h *SessionHandler) DisconnectHandler(c *gin.Context) {
	_ = h.session.Disconnect(c.Request.Context())

	c.JSON(http.StatusOK, SessionResponse{
		Data:          h.session.Snapshot(),
		StatusMessage: "Wallet disconnected.",
	})
}

// RefreshHandler re-fetches the portfolio for the connected wallet.
func (h *SessionHandler) RefreshHandler(c *gin.Context) {
	if err := h.session.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Data:          h.session.Snapshot(),
		StatusMessage: "Portfolio refreshed.",
	})
}
