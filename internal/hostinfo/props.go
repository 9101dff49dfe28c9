package hostinfo

import (
	"regexp"
	"strconv"
	"strings"
)

// getpropLine matches "[key]: [value]" lines of a getprop dump.
var getpropLine = regexp.MustCompile(`^\[([^\]]+)\]: \[(.*)\]$`)

// parseGetprop parses a getprop dump into a key/value map.
func parseGetprop(out string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		m := getpropLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		props[m[1]] = m[2]
	}
	return props
}

// buildFromProps maps Android ro.* properties onto BuildInfo.
func buildFromProps(props map[string]string) BuildInfo {
	api, _ := strconv.Atoi(props["ro.build.version.sdk"])

	abiList := props["ro.product.cpu.abilist"]
	if abiList == "" {
		abiList = props["ro.product.cpu.abi"]
	}

	return BuildInfo{
		Manufacturer:  props["ro.product.manufacturer"],
		Model:         props["ro.product.model"],
		Release:       props["ro.build.version.release"],
		APILevel:      api,
		SupportedABIs: splitList(abiList),
		Bootloader:    props["ro.bootloader"],
		Hardware:      props["ro.hardware"],
		Type:          props["ro.build.type"],
		Tags:          props["ro.build.tags"],
		Fingerprint:   props["ro.build.fingerprint"],
		SecurityPatch: props["ro.build.version.security_patch"],
	}
}

// splitList splits a comma-separated property, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
