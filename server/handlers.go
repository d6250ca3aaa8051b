package server

import (
	"net/http"
	"strconv"

	"github.com/brett-smythe/eleanor/store"
	Logger "github.com/brett-smythe/eleanor/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// APIHandler binds the HTTP surface to an injected store. The handlers
// are thin dispatch only: decode, call the store, render.
type APIHandler struct {
	Store *store.Store
}

func NewAPIHandler(s *store.Store) *APIHandler {
	return &APIHandler{Store: s}
}

// Temp test endpoint to verify the service is running.
func (h *APIHandler) Hello(c *gin.Context) {
	Logger.Log.Debug("hitting the test endpoint")
	c.String(http.StatusOK, "Ello there")
}

func (h *APIHandler) GetTrackedUsers(c *gin.Context) {
	Logger.Log.Debug("returning tracked twitter timeline users")
	users, err := h.Store.GetTrackedUsers()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"twitter_usernames": users})
}

type trackedUsersRequest struct {
	TwitterUsernames []string `json:"twitter_usernames"`
}

func (h *APIHandler) AddTrackedUsers(c *gin.Context) {
	var req trackedUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected json body with twitter_usernames"})
		return
	}
	Logger.Log.Infof("adding users %v to tracked twitter timeline users", req.TwitterUsernames)
	for _, username := range req.TwitterUsernames {
		tracked, err := h.Store.IsUserTracked(username)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		if tracked {
			continue
		}
		if err := h.Store.BeginTrackingUser(username); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	}
	c.Status(http.StatusOK)
}

func (h *APIHandler) AddTweetData(c *gin.Context) {
	var data store.TweetData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed tweet payload"})
		return
	}
	if _, err := h.Store.InsertTweetData(&data); err != nil {
		if errors.Is(err, store.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (h *APIHandler) GetTweetById(c *gin.Context) {
	tweetId, err := strconv.ParseInt(c.Param("tweet_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tweet_id must be numeric"})
		return
	}
	data, err := h.Store.GetTweetDataById(tweetId)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if data == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *APIHandler) GetLastTweetId(c *gin.Context) {
	username := c.Param("username")
	lastId, found, err := h.Store.LastTweetId(username)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if !found {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"last_tweet_id": lastId})
}

type tweetsOnDateRequest struct {
	TwitterUsername string `json:"twitter_username"`
	SearchDate      string `json:"search_date"`
	SearchTerm      string `json:"search_term"`
}

func (h *APIHandler) SearchTweetsOnDate(c *gin.Context) {
	var req tweetsOnDateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TwitterUsername == "" || req.SearchDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected json body with twitter_username, search_date and search_term"})
		return
	}
	counts, err := h.Store.SearchCountOfUserTweetsOnDay(req.TwitterUsername, req.SearchDate, req.SearchTerm)
	if err != nil {
		if errors.Is(err, store.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, counts)
}
