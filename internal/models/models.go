package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is the owning identity for every per-account resource.
// HashedPassword never leaves the process.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName       string    `gorm:"size:255" json:"full_name"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	AvatarURL      *string   `gorm:"size:512" json:"avatar_url"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	ServerStatusActive      = "active"
	ServerStatusMaintenance = "maintenance"
	ServerStatusError       = "error"
)

type Server struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"index;size:255" json:"name"`
	Location         string    `gorm:"size:64" json:"location"` // US-East-1, EU-West-1, ...
	CPUUsage         float64   `gorm:"default:0" json:"cpu_usage"`
	MemoryUsage      float64   `gorm:"default:0" json:"memory_usage"`
	MemoryTotal      float64   `gorm:"default:0" json:"memory_total"`
	BandwidthUsage   float64   `gorm:"default:0" json:"bandwidth_usage"`
	UptimePercentage float64   `gorm:"default:99.99" json:"uptime_percentage"`
	Status           string    `gorm:"size:32;default:active" json:"status"`
	IPAddress        string    `gorm:"size:64" json:"ip_address"`
	CreatedAt        time.Time `json:"created_at"`
	OwnerID          uint      `gorm:"index;not null" json:"owner_id"`
}

func (s Server) OwnedBy() uint { return s.OwnerID }

// ServerMetric is append-only: rows are inserted and range-queried by
// recency, never updated or deleted.
type ServerMetric struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ServerID    uint      `gorm:"index;not null" json:"server_id"`
	CPUUsage    float64   `json:"cpu_usage"`
	MemoryUsage float64   `json:"memory_usage"`
	NetworkIn   float64   `json:"network_in"`
	NetworkOut  float64   `json:"network_out"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusProposal  = "proposal"
	LeadStatusClosing   = "closing"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

type CRMLead struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CompanyName    string    `gorm:"index;size:255" json:"company_name"`
	ContactName    string    `gorm:"size:255" json:"contact_name"`
	Email          string    `gorm:"size:255" json:"email"`
	Phone          *string   `gorm:"size:64" json:"phone"`
	LeadScore      int       `gorm:"default:0" json:"lead_score"`
	Status         string    `gorm:"size:32;default:new" json:"status"`
	Temperature    string    `gorm:"size:16;default:cold" json:"temperature"` // cold|warm|hot
	EstimatedValue float64   `gorm:"default:0" json:"estimated_value"`
	ImageURL       *string   `gorm:"size:512" json:"image_url"`
	Notes          *string   `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	OwnerID        uint      `gorm:"index;not null" json:"owner_id"`
}

func (l CRMLead) OwnedBy() uint { return l.OwnerID }

type CloudFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"index;size:255" json:"filename"`
	FileType     string    `gorm:"size:32" json:"file_type"` // pdf, jpg, docx, ...
	FileSize     float64   `json:"file_size"`                // MB
	StoragePath  string    `gorm:"size:512" json:"-"`
	Folder       string    `gorm:"size:255;default:Documents" json:"folder"`
	ThumbnailURL *string   `gorm:"size:512" json:"thumbnail_url"`
	UploadedAt   time.Time `json:"uploaded_at"`
	OwnerID      uint      `gorm:"index;not null" json:"owner_id"`
}

func (f CloudFile) OwnedBy() uint { return f.OwnerID }

// HostingPlan is a global read-only catalog entry.
type HostingPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:64" json:"name"` // Starter, Pro, Enterprise
	Price       float64        `json:"price"`
	CPUVCores   int            `json:"cpu_vcores"`
	RAMGB       int            `json:"ram_gb"`
	StorageGB   int            `json:"storage_gb"`
	BandwidthTB float64        `json:"bandwidth_tb"`
	IsPopular   bool           `gorm:"default:false" json:"is_popular"`
	Features    datatypes.JSON `json:"features,omitempty"`
}

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type HostingOrder struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Reference          string    `gorm:"uniqueIndex;size:64;not null" json:"reference"`
	UserID             uint      `gorm:"index;not null" json:"user_id"`
	PlanID             uint      `gorm:"index;not null" json:"plan_id"`
	DomainName         string    `gorm:"size:255" json:"domain_name"`
	DatacenterLocation string    `gorm:"size:64" json:"datacenter_location"`
	SSLEnabled         bool      `gorm:"default:true" json:"ssl_enabled"`
	TotalAmount        float64   `json:"total_amount"` // computed once at create, authoritative
	PaymentStatus      string    `gorm:"size:32;default:pending" json:"payment_status"`
	CreatedAt          time.Time `json:"created_at"`
}

func (o HostingOrder) OwnedBy() uint { return o.UserID }

const (
	AlertSeverityCritical = "critical"
	AlertSeverityWarning  = "warning"
	AlertSeverityInfo     = "info"

	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

// Alert is global, not owner-scoped. Read-only: the active→resolved
// transition is not exposed.
type Alert struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"size:1024" json:"description"`
	Severity    string    `gorm:"size:16;index" json:"severity"`
	Status      string    `gorm:"size:16;index;default:active" json:"status"`
	ServerID    *uint     `gorm:"index" json:"server_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// SiteTemplate is a global read-only catalog entry.
type SiteTemplate struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:255" json:"name"`
	Category     string         `gorm:"size:64;index" json:"category"` // Portfolio, E-commerce, SaaS, Blog
	Description  string         `gorm:"size:1024" json:"description"`
	PreviewImage string         `gorm:"size:512" json:"preview_image"`
	IsPremium    bool           `gorm:"default:false" json:"is_premium"`
	Tags         datatypes.JSON `json:"tags,omitempty"`
}
