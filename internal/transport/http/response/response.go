package response

import "github.com/gin-gonic/gin"

// Client-safe failure messages. Internal error detail stays in the logs.
const (
	MsgMissingFields   = "Missing required fields."
	MsgAIError         = "AI error. Try again."
	MsgFetchMemories   = "Failed to fetch memories."
	MsgFetchSessions   = "Failed to fetch sessions."
	MsgFetchChats      = "Failed to fetch chat messages."
	MsgSaveMemory      = "Failed to save memory"
	MsgInvalidToken    = "Invalid token"
	MsgNoToken         = "No token provided"
	MsgUserExists      = "User already exists"
	MsgUserNotFound    = "User not found."
	MsgInvalidPassword = "Invalid password."
	MsgRegisterFailed  = "Registration failed."
	MsgLoginFailed     = "Login failed."
)

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
