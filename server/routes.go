package server

import (
	"github.com/brett-smythe/eleanor/store"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the eleanor HTTP surface onto router.
func RegisterRoutes(router *gin.Engine, s *store.Store) {
	h := NewAPIHandler(s)

	router.GET("/", h.Hello)

	router.GET("/twitter-tl-users", h.GetTrackedUsers)
	router.POST("/twitter-tl-users", h.AddTrackedUsers)

	router.POST("/add-tweet-data", h.AddTweetData)
	router.GET("/tweet/:tweet_id", h.GetTweetById)
	router.GET("/last-tweet-id/:username", h.GetLastTweetId)
	router.POST("/stats/tweets-on-date", h.SearchTweetsOnDate)
}
