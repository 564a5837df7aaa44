package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifetrack/internal/currency"
)

// ListCurrencies returns the supported currencies and their USD rates
// @Summary     List currencies
// @Tags        currencies
// @Produce     json
// @Success     200 {array} currency.Currency "Supported currencies"
// @Router      /currencies [get]
func ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":    currency.DefaultCurrency,
		"currencies": currency.All(),
	})
}
