package flasharray

import (
	"time"
)

// Reference identifies a target resource by id and/or name. The id is an
// opaque identifier that is stable for the object's lifetime; the name is a
// mutable label that is unique within the array. A reference with neither
// field set cannot be resolved.
type Reference struct {
	ID   string `json:"id,omitempty"   yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Space reports physical and logical space consumption for a resource.
type Space struct {
	DataReduction    float64 `json:"data_reduction"     yaml:"data_reduction"`
	Snapshots        int64   `json:"snapshots"          yaml:"snapshots"`
	ThinProvisioning float64 `json:"thin_provisioning"  yaml:"thin_provisioning"`
	TotalPhysical    int64   `json:"total_physical"     yaml:"total_physical"`
	TotalProvisioned int64   `json:"total_provisioned"  yaml:"total_provisioned"`
	TotalReduction   float64 `json:"total_reduction"    yaml:"total_reduction"`
	Unique           int64   `json:"unique"             yaml:"unique"`
	Virtual          int64   `json:"virtual"            yaml:"virtual"`
}

// Array represents the managed array itself.
type Array struct {
	ID       string `json:"id"        yaml:"id"`
	Name     string `json:"name"      yaml:"name"`
	OS       string `json:"os"        yaml:"os"`
	Version  string `json:"version"   yaml:"version"`
	Capacity int64  `json:"capacity"  yaml:"capacity"`
	Space    *Space `json:"space"     yaml:"space"`
}

// ArrayPatch is the update request body for the array.
type ArrayPatch struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Volume represents a block volume.
type Volume struct {
	ID            string     `json:"id"                       yaml:"id"`
	Name          string     `json:"name"                     yaml:"name"`
	Provisioned   int64      `json:"provisioned"              yaml:"provisioned"`
	Serial        string     `json:"serial"                   yaml:"serial"`
	Created       int64      `json:"created"                  yaml:"created"`
	Destroyed     bool       `json:"destroyed"                yaml:"destroyed"`
	TimeRemaining int64      `json:"time_remaining,omitempty" yaml:"time_remaining,omitempty"`
	Pod           *Reference `json:"pod,omitempty"            yaml:"pod,omitempty"`
	Source        *Reference `json:"source,omitempty"         yaml:"source,omitempty"`
	Space         *Space     `json:"space,omitempty"          yaml:"space,omitempty"`
}

// VolumePost is the create request body for volumes.
type VolumePost struct {
	Provisioned int64      `json:"provisioned"      yaml:"provisioned"`
	Source      *Reference `json:"source,omitempty" yaml:"source,omitempty"`
}

// VolumePatch is the update request body for volumes.
type VolumePatch struct {
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Provisioned int64  `json:"provisioned,omitempty" yaml:"provisioned,omitempty"`
	Destroyed   *bool  `json:"destroyed,omitempty"   yaml:"destroyed,omitempty"`
}

// Host represents an initiator host. Hosts are keyed by name only.
type Host struct {
	Name            string     `json:"name"                  yaml:"name"`
	IQNs            []string   `json:"iqns,omitempty"        yaml:"iqns,omitempty"`
	WWNs            []string   `json:"wwns,omitempty"        yaml:"wwns,omitempty"`
	NQNs            []string   `json:"nqns,omitempty"        yaml:"nqns,omitempty"`
	Personality     string     `json:"personality,omitempty" yaml:"personality,omitempty"`
	HostGroup       *Reference `json:"host_group,omitempty"  yaml:"host_group,omitempty"`
	ConnectionCount int        `json:"connection_count"      yaml:"connection_count"`
	IsLocal         bool       `json:"is_local"              yaml:"is_local"`
}

// HostPost is the create request body for hosts.
type HostPost struct {
	IQNs        []string `json:"iqns,omitempty"        yaml:"iqns,omitempty"`
	WWNs        []string `json:"wwns,omitempty"        yaml:"wwns,omitempty"`
	NQNs        []string `json:"nqns,omitempty"        yaml:"nqns,omitempty"`
	Personality string   `json:"personality,omitempty" yaml:"personality,omitempty"`
}

// HostPatch is the update request body for hosts.
type HostPatch struct {
	Name        string     `json:"name,omitempty"        yaml:"name,omitempty"`
	IQNs        []string   `json:"iqns,omitempty"        yaml:"iqns,omitempty"`
	WWNs        []string   `json:"wwns,omitempty"        yaml:"wwns,omitempty"`
	NQNs        []string   `json:"nqns,omitempty"        yaml:"nqns,omitempty"`
	Personality string     `json:"personality,omitempty" yaml:"personality,omitempty"`
	HostGroup   *Reference `json:"host_group,omitempty"  yaml:"host_group,omitempty"`
}

// HostGroup represents a group of hosts sharing volume connections.
type HostGroup struct {
	Name            string `json:"name"             yaml:"name"`
	HostCount       int    `json:"host_count"       yaml:"host_count"`
	ConnectionCount int    `json:"connection_count" yaml:"connection_count"`
	IsLocal         bool   `json:"is_local"         yaml:"is_local"`
}

// HostGroupPatch is the update request body for host groups.
type HostGroupPatch struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Pod represents a stretched namespace that can span arrays.
type Pod struct {
	ID                 string      `json:"id"                 yaml:"id"`
	Name               string      `json:"name"               yaml:"name"`
	Arrays             []Reference `json:"arrays,omitempty"   yaml:"arrays,omitempty"`
	Mediator           string      `json:"mediator,omitempty" yaml:"mediator,omitempty"`
	PromotionStatus    string      `json:"promotion_status"   yaml:"promotion_status"`
	Destroyed          bool        `json:"destroyed"          yaml:"destroyed"`
	FailoverPreference *Reference  `json:"failover_preference,omitempty" yaml:"failover_preference,omitempty"`
}

// PodPost is the create request body for pods.
type PodPost struct {
	FailoverPreference *Reference `json:"failover_preference,omitempty" yaml:"failover_preference,omitempty"`
}

// PodPatch is the update request body for pods.
type PodPatch struct {
	Name      string `json:"name,omitempty"      yaml:"name,omitempty"`
	Mediator  string `json:"mediator,omitempty"  yaml:"mediator,omitempty"`
	Destroyed *bool  `json:"destroyed,omitempty" yaml:"destroyed,omitempty"`
}

// ProtectionGroup represents a consistency group for snapshots and
// replication.
type ProtectionGroup struct {
	Name                string     `json:"name"                  yaml:"name"`
	HostCount           int        `json:"host_count"            yaml:"host_count"`
	HostGroupCount      int        `json:"host_group_count"      yaml:"host_group_count"`
	VolumeCount         int        `json:"volume_count"          yaml:"volume_count"`
	SnapshotCount       int        `json:"snapshot_count"        yaml:"snapshot_count"`
	Destroyed           bool       `json:"destroyed"             yaml:"destroyed"`
	Pod                 *Reference `json:"pod,omitempty"         yaml:"pod,omitempty"`
	ReplicationSchedule *Schedule  `json:"replication_schedule,omitempty" yaml:"replication_schedule,omitempty"`
	SnapshotSchedule    *Schedule  `json:"snapshot_schedule,omitempty"    yaml:"snapshot_schedule,omitempty"`
}

// Schedule describes a periodic protection schedule.
type Schedule struct {
	Enabled   bool  `json:"enabled"              yaml:"enabled"`
	Frequency int64 `json:"frequency,omitempty"  yaml:"frequency,omitempty"`
	AtTime    int64 `json:"at,omitempty"         yaml:"at,omitempty"`
}

// ProtectionGroupPatch is the update request body for protection groups.
type ProtectionGroupPatch struct {
	Name                string    `json:"name,omitempty"                 yaml:"name,omitempty"`
	Destroyed           *bool     `json:"destroyed,omitempty"            yaml:"destroyed,omitempty"`
	ReplicationSchedule *Schedule `json:"replication_schedule,omitempty" yaml:"replication_schedule,omitempty"`
	SnapshotSchedule    *Schedule `json:"snapshot_schedule,omitempty"    yaml:"snapshot_schedule,omitempty"`
}

// VolumeSnapshot represents a point-in-time image of a volume.
type VolumeSnapshot struct {
	ID            string     `json:"id"                       yaml:"id"`
	Name          string     `json:"name"                     yaml:"name"`
	Created       int64      `json:"created"                  yaml:"created"`
	Destroyed     bool       `json:"destroyed"                yaml:"destroyed"`
	Provisioned   int64      `json:"provisioned"              yaml:"provisioned"`
	TimeRemaining int64      `json:"time_remaining,omitempty" yaml:"time_remaining,omitempty"`
	Source        *Reference `json:"source,omitempty"         yaml:"source,omitempty"`
	Pod           *Reference `json:"pod,omitempty"            yaml:"pod,omitempty"`
}

// VolumeSnapshotPost is the create request body for volume snapshots.
type VolumeSnapshotPost struct {
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Connection represents a host/volume connection with its LUN.
type Connection struct {
	Host      *Reference `json:"host"                 yaml:"host"`
	HostGroup *Reference `json:"host_group,omitempty" yaml:"host_group,omitempty"`
	Volume    *Reference `json:"volume"               yaml:"volume"`
	LUN       int        `json:"lun"                  yaml:"lun"`
}

// ConnectionPost is the create request body for connections.
type ConnectionPost struct {
	LUN int `json:"lun,omitempty" yaml:"lun,omitempty"`
}

// Session represents an authenticated session on the array.
type Session struct {
	Username string    `json:"username"   yaml:"username"`
	Expires  time.Time `json:"expires"    yaml:"expires"`
}
