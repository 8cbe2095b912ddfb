package scene

// Player model shaders. The fragment shader discards transparent
// texels so the overlay layer renders as a cutout.

const playerVertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoord;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    gl_Position = uMVP * vec4(aPos, 1.0);
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
}
`

const playerFragmentShader = `#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;

out vec4 fragColor;

void main() {
    vec4 texel = texture(uTexture, vTexCoord);
    if (texel.a < 0.5) {
        discard;
    }
    vec3 n = normalize(vNormal);
    float lambert = max(dot(n, -normalize(uLightDir)), 0.0);
    vec3 lit = uAmbient + uDiffuse * lambert;
    fragColor = vec4(texel.rgb * min(lit, vec3(1.0)), texel.a);
}
`
