package wgpu

import (
	"github.com/gogpu/spv"
	"github.com/gogpu/wgpu/hal"
)

// CreateShaderModule creates a HAL shader module from a compiled or
// loaded artifact. The artifact's container framing is validated first,
// so bytecode from an untrusted store fails before it reaches the device.
func CreateShaderModule(device hal.Device, artifact *spv.Artifact) (hal.ShaderModule, error) {
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: artifact.Name,
		Source: hal.ShaderSource{
			SPIRV: artifact.Words(),
		},
	})
}
