package bmpfilter

// maxMipLevels caps the chain; 11 levels cover 1024 pixels.
const maxMipLevels = 11

// mipLevelCount returns the number of levels down to 1x1 for a texture,
// limited to maxMipLevels.
func mipLevelCount(width, height int) (int, error) {
	count := 1
	w, err := u32FromInt(width)
	if err != nil {
		return 0, err
	}

	h, err := u32FromInt(height)
	if err != nil {
		return 0, err
	}

	for w > 1 || h > 1 {
		count++
		w = max(w/2, 1)
		h = max(h/2, 1)
	}

	return min(count, maxMipLevels), nil
}

// mipDimension returns the size of one side at the given level.
func mipDimension(base, level int) int {
	return max(base>>level, 1)
}
