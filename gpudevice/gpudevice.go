// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpudevice wraps wgpu device acquisition for the GPU-backed
// render path spec.md §4.8 describes: given an adapter a host has
// already selected (surface creation and adapter enumeration are a
// windowing concern outside this package), Open creates a logical
// device and its queue, and Info/LogInfo report what that device can
// do before the pipeline cache starts building pipelines against it.
package gpudevice

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"
)

// Info describes the GPU backing a Device.
type Info struct {
	Name       string
	Vendor     string
	DeviceType types.DeviceType
	Backend    types.Backend
	Driver     string
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, i.DeviceType, i.Backend)
}

// Device owns a wgpu logical device and its queue, released by Close.
type Device struct {
	adapter core.AdapterID
	device  core.DeviceID
	queue   core.QueueID
	info    Info
}

// Open requests a logical device from adapter with default limits
// and no optional features, matching the engine's needs: it draws
// opaque triangles, points, and lines, and reads back a single pick
// texel, none of which need anything beyond the baseline limit set.
func Open(adapter core.AdapterID, label string) (*Device, error) {
	info, err := queryInfo(adapter)
	if err != nil {
		return nil, err
	}

	desc := &types.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	}
	deviceID, err := core.RequestDevice(adapter, desc)
	if err != nil {
		return nil, fmt.Errorf("gpudevice: request device: %w", err)
	}

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = core.DeviceDrop(deviceID)
		return nil, fmt.Errorf("gpudevice: get device queue: %w", err)
	}

	return &Device{adapter: adapter, device: deviceID, queue: queueID, info: info}, nil
}

func queryInfo(adapter core.AdapterID) (Info, error) {
	raw, err := core.GetAdapterInfo(adapter)
	if err != nil {
		return Info{}, fmt.Errorf("gpudevice: get adapter info: %w", err)
	}
	return Info{
		Name:       raw.Name,
		Vendor:     raw.Vendor,
		DeviceType: raw.DeviceType,
		Backend:    raw.Backend,
		Driver:     raw.Driver,
	}, nil
}

// ID returns the underlying wgpu device handle, for packages (the
// pipeline cache, a future command-encoder layer) that need to issue
// raw wgpu calls this package doesn't wrap.
func (d *Device) ID() core.DeviceID { return d.device }

// Queue returns the device's command queue.
func (d *Device) Queue() core.QueueID { return d.queue }

// Info reports the adapter this device was opened against.
func (d *Device) Info() Info { return d.info }

// LogInfo writes the device's adapter info and limits to log at
// info/debug level, the software path's equivalent of the once-per-
// session "which GPU did we land on" diagnostic a host typically
// wants at startup.
func (d *Device) LogInfo(log *slog.Logger) error {
	log.Info("gpudevice: selected adapter", "info", d.info.String())
	limits, err := core.GetDeviceLimits(d.device)
	if err != nil {
		return fmt.Errorf("gpudevice: get device limits: %w", err)
	}
	log.Debug("gpudevice: device limits",
		"max_texture_dimension_2d", limits.MaxTextureDimension2D,
		"max_buffer_size", limits.MaxBufferSize,
	)
	return nil
}

// Close releases the device and, if non-zero, the adapter it was
// opened against.
func (d *Device) Close() error {
	if err := core.DeviceDrop(d.device); err != nil {
		return fmt.Errorf("gpudevice: release device: %w", err)
	}
	if !d.adapter.IsZero() {
		if err := core.AdapterDrop(d.adapter); err != nil {
			return fmt.Errorf("gpudevice: release adapter: %w", err)
		}
	}
	return nil
}
