package server

import (
	"net/http"
	"strings"

	"github.com/drillops/wellsvc/internal/usagestats"
	welldomain "github.com/drillops/wellsvc/internal/well/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListWellIDs(c *gin.Context) {
	s.stats.Increment(usagestats.OpListWellIDs)

	ids, err := s.wellSvc.ListIDs(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

func (s *Server) ListWellMetaInfo(c *gin.Context) {
	s.stats.Increment(usagestats.OpListMetaInfo)

	metaInfos, err := s.wellSvc.ListMetaInfo(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, metaInfos)
}

func (s *Server) GetWellByID(c *gin.Context) {
	s.stats.Increment(usagestats.OpGetWellByID)

	id := strings.TrimSpace(c.Param("id"))
	well, err := s.wellSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, well)
}

func (s *Server) ListWells(c *gin.Context) {
	s.stats.Increment(usagestats.OpListWells)

	wells, err := s.wellSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wells)
}

func (s *Server) ListUsedSlotIDsByCluster(c *gin.Context) {
	clusterID := strings.TrimSpace(c.Param("clusterId"))
	slotIDs, err := s.wellSvc.ListUsedSlotIDsByCluster(c.Request.Context(), clusterID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, slotIDs)
}

func (s *Server) AddWell(c *gin.Context) {
	s.stats.Increment(usagestats.OpAddWell)

	var well welldomain.Well
	if err := c.ShouldBindJSON(&well); err != nil {
		AbortWithError(c, welldomain.ErrInvalidWell)
		return
	}

	if err := s.wellSvc.Add(c.Request.Context(), &well); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) UpdateWellByID(c *gin.Context) {
	s.stats.Increment(usagestats.OpUpdateWellByID)

	var well welldomain.Well
	if err := c.ShouldBindJSON(&well); err != nil {
		AbortWithError(c, welldomain.ErrInvalidWell)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if err := s.wellSvc.UpdateByID(c.Request.Context(), id, &well); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) DeleteWellByID(c *gin.Context) {
	s.stats.Increment(usagestats.OpDeleteWellByID)

	id := strings.TrimSpace(c.Param("id"))
	if err := s.wellSvc.DeleteByID(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
