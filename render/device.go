// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the integration point between pick2d and GPU
// frameworks like gogpu. The host application implements DeviceHandle and
// passes it to renderers, allowing pick2d to use the shared GPU device.
//
// Key principle: pick2d RECEIVES the device from the host, it does NOT
// create one. This enables:
//   - Shared GPU resources between pick2d and the host application
//   - Zero device creation overhead in pick2d
//   - Consistent resource management across the stack
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// pick2d-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider
