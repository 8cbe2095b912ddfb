package keyframe

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ExportSource renders the animation's tracks as a compilable Go
// source file declaring one Tracks variable. The output is
// deterministic: paths sorted lexically, keys in track order, floats
// in shortest round-trip form.
func (a *Animation) ExportSource(pkgName, varName string) ([]byte, error) {
	if pkgName == "" || varName == "" {
		return nil, errors.New("keyframe: export needs a package and variable name")
	}

	paths := make([]string, 0, len(a.tracks))
	for path := range a.tracks {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("// Code generated by animtool. DO NOT EDIT.\n\n")
	b.WriteString("package " + pkgName + "\n\n")
	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/Faultbox/skinview/pkg/keyframe\"\n")
	b.WriteString("\t\"github.com/Faultbox/skinview/pkg/math\"\n")
	b.WriteString(")\n\n")
	b.WriteString("var " + varName + " = keyframe.Tracks{\n")
	for _, path := range paths {
		b.WriteString("\t" + strconv.Quote(path) + ": {\n")
		for _, k := range a.tracks[path] {
			b.WriteString("\t\t{Time: " + ftoa(k.Time) +
				", Rotation: math.Vec3{X: " + ftoa(k.Rotation.X) +
				", Y: " + ftoa(k.Rotation.Y) +
				", Z: " + ftoa(k.Rotation.Z) + "}},\n")
		}
		b.WriteString("\t},\n")
	}
	b.WriteString("}\n")
	return []byte(b.String()), nil
}

func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
