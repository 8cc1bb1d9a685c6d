package utils

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

//InSlice returns true if given string appears in given slice
func InSlice(lookingFor string, slice []string) bool {
	for _, s := range slice {
		if s == lookingFor {
			return true
		}
	}

	return false
}

//InClasses returns true if given class id appears in given class set
func InClasses(class int, classes []int) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}

	return false
}

//ListDir returns a list of files/ directories in given path
func ListDir(path string) ([]string, error) {
	names := make([]string, 0)
	if entries, err := os.ReadDir(path); err != nil {
		return nil, fmt.Errorf("ListDir: Error, got '%v'", err)
	} else {
		for _, e := range entries {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

//EnsureDir creates given directory (and parents) if it does not exist yet
func EnsureDir(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(path, 0766)
		}
		return err
	}

	return nil
}

//FormatRounded rounds v to given number of decimals and prints it without trailing zeros ("12.5", not "12.50")
func FormatRounded(v float64, decimals int) string {
	p := math.Pow(10, float64(decimals))
	return strconv.FormatFloat(math.Round(v*p)/p, 'f', -1, 64)
}
