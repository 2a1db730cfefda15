package theme

import (
	"strconv"
	"strings"

	"github.com/npillmayer/jitcss/datatypes"
)

// commaJoined lists sections where list values are rendered as comma
// separated CSS lists.
var commaJoined = map[string]bool{
	"fontFamily": true, "boxShadow": true, "transitionProperty": true,
	"transitionDuration": true, "transitionDelay": true,
	"transitionTimingFunction": true, "backgroundImage": true,
	"backgroundSize": true, "backgroundColor": true, "cursor": true,
	"animation": true,
}

// Stringify renders a theme value of the given section as CSS text. It
// reports false for values which are not leaves.
func Stringify(section string, v any) (string, bool) {
	switch x := v.(type) {
	case string:
		switch section {
		case "gridTemplateColumns", "gridTemplateRows", "objectPosition":
			parts := datatypes.SplitAtTopLevelOnly(x, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return strings.Join(parts, " "), true
		}
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case []string:
		return stringifyList(section, x), true
	case []any:
		list := make([]string, 0, len(x))
		for _, e := range x {
			switch ee := e.(type) {
			case string:
				list = append(list, ee)
			case map[string]any:
				// options like fontSize line heights
			default:
				if s, ok := Stringify("", ee); ok {
					list = append(list, s)
				}
			}
		}
		if len(list) == 0 {
			return "", false
		}
		return stringifyList(section, list), true
	}
	return "", false
}

func stringifyList(section string, list []string) string {
	if len(list) == 0 {
		return ""
	}
	switch {
	case section == "fontSize" || section == "outline":
		return list[0]
	case commaJoined[section]:
		return strings.Join(list, ", ")
	}
	return strings.Join(list, ",")
}
