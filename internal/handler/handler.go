package handler

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// callerID returns the authenticated user's id. The auth middleware has
// already validated the hex form, so a decode failure here only happens on
// unauthenticated test contexts and yields the zero id, which matches nothing.
func callerID(c *gin.Context) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(c.GetString("user_id"))
	return id
}
