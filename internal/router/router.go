package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"AssignReminders/internal/handler"
	"AssignReminders/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	h.GET("/healthz", handler.Healthz)

	v1 := h.Group("/v1")

	// 微信小程序绑定与订阅
	wechat := v1.Group("/wechat")
	{
		wechat.POST("/bind", handler.BindWechat)
		wechat.POST("/subscribe", handler.Subscribe)
		wechat.GET("/binding", handler.GetBinding)
	}
}
