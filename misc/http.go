package misc

import (
	"bytes"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// BindingPathID parses the ":id" path parameter.
func BindingPathID(c *gin.Context) (types.ID, error) {
	return types.ParseID(c.Param("id"))
}

func StringReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}
