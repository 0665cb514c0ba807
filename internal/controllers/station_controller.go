package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mrt_fare/internal/config"
	"mrt_fare/internal/geo"
	"mrt_fare/internal/graph"
	"mrt_fare/internal/models"

	gogeom "github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

// ListStations returns every station with its neighbor set. This is
// the read surface rider apps use to render the network.
func ListStations(c *gin.Context) {
	stations, err := dataStore.Stations()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

// NetworkGeoJSON exports the station network as a GeoJSON
// FeatureCollection: one Point per station, one LineString per
// undirected edge.
func NetworkGeoJSON(c *gin.Context) {
	stations, err := dataStore.Stations()
	if err != nil {
		respondError(c, err)
		return
	}

	byID := make(map[uint]models.Station, len(stations))
	for _, s := range stations {
		byID[s.ID] = s
	}

	fc := &gjson.FeatureCollection{}
	for _, s := range stations {
		fc.Features = append(fc.Features, &gjson.Feature{
			ID:       strconv.FormatUint(uint64(s.ID), 10),
			Geometry: gogeom.NewPointFlat(gogeom.XY, []float64{s.Lng, s.Lat}),
			Properties: map[string]interface{}{
				"name": s.Name,
			},
		})
	}
	for _, s := range stations {
		for _, raw := range s.Neighbors {
			other, ok := byID[uint(raw)]
			if !ok || other.ID <= s.ID { // emit each undirected edge once
				continue
			}
			fc.Features = append(fc.Features, &gjson.Feature{
				ID:       fmt.Sprintf("%d-%d", s.ID, other.ID),
				Geometry: gogeom.NewLineStringFlat(gogeom.XY, []float64{s.Lng, s.Lat, other.Lng, other.Lat}),
				Properties: map[string]interface{}{
					"from": s.Name,
					"to":   other.Name,
				},
			})
		}
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

// CreateStation adds a station with no connections yet. Requires the
// admin-edit window.
func CreateStation(c *gin.Context) {
	if !requireMaintenanceWindow(c) {
		return
	}

	var input struct {
		Name string   `json:"name" binding:"required"`
		Lat  *float64 `json:"lat" binding:"required"`
		Lng  *float64 `json:"lng" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateStation: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	station := models.Station{Name: input.Name, Lat: *input.Lat, Lng: *input.Lng}
	if err := config.DB.Create(&station).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create station failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"station": station})
}

// UpdateStation renames or moves a station. Moving a station must not
// shrink any existing edge under the distance floor.
func UpdateStation(c *gin.Context) {
	if !requireMaintenanceWindow(c) {
		return
	}

	sID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	var station models.Station
	if err := config.DB.First(&station, sID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name *string  `json:"name"`
		Lat  *float64 `json:"lat"`
		Lng  *float64 `json:"lng"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		station.Name = *input.Name
	}
	if input.Lat != nil {
		station.Lat = *input.Lat
	}
	if input.Lng != nil {
		station.Lng = *input.Lng
	}

	// The distance floor holds at update time too: a move that brings
	// a connected neighbor closer than the floor is rejected.
	for _, raw := range station.Neighbors {
		var neighbor models.Station
		if err := config.DB.First(&neighbor, uint(raw)).Error; err != nil {
			continue
		}
		d := geo.Haversine(station.Lat, station.Lng, neighbor.Lat, neighbor.Lng)
		if d < graph.MinEdgeMeters {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("move would put %s only %.0f m from %s", station.Name, d, neighbor.Name),
			})
			return
		}
	}

	if err := config.DB.Save(&station).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"station": station})
}

// DeleteStation removes a station and detaches it from every neighbor.
func DeleteStation(c *gin.Context) {
	if !requireMaintenanceWindow(c) {
		return
	}

	sID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}
	if err := topology.RemoveStation(uint(sID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Station deleted successfully"})
}

type edgeInput struct {
	StationA uint `json:"station_a" binding:"required"`
	StationB uint `json:"station_b" binding:"required"`
}

// ConnectStations adds an undirected edge between two stations.
func ConnectStations(c *gin.Context) {
	if !requireMaintenanceWindow(c) {
		return
	}

	var input edgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := topology.Connect(input.StationA, input.StationB); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stations connected"})
}

// DisconnectStations removes the edge between two stations.
func DisconnectStations(c *gin.Context) {
	if !requireMaintenanceWindow(c) {
		return
	}

	var input edgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := topology.Disconnect(input.StationA, input.StationB); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stations disconnected"})
}
