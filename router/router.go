package router

import (
	"github.com/bennypn/ai-kop-indosat/controller"
	"github.com/bennypn/ai-kop-indosat/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Register(ac *controller.AnalysisController) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	r.POST("/analyze", ac.Analyze)
	r.GET("/inquiry/:pdf_id", ac.Inquiry)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
