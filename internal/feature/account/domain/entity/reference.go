package entity

// Tag is a topic of interest an account can subscribe to.
type Tag struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"uniqueIndex;size:64;not null"`
}

// Zone is a geographic region an account can subscribe to.
type Zone struct {
	ID       uint   `gorm:"primaryKey"`
	City     string `gorm:"size:64;not null;uniqueIndex:idx_zones_city_province"`
	Province string `gorm:"size:64;uniqueIndex:idx_zones_city_province"`
}
