package http

// registerV1Routes sets up the v1 API.
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	establishments := v1.Group("/establishments")
	{
		establishments.GET("", s.handleV1ListEstablishments)
		establishments.GET("/:id/detail", s.handleV1EstablishmentDetail)
		establishments.GET("/:id/history", s.handleV1EstablishmentHistory)
	}

	v1.GET("/capacities", s.handleV1Capacities)
	v1.GET("/stats/states", s.handleV1StateStats)
	v1.GET("/export/establishments.xlsx", s.handleV1ExportEstablishments)
}
