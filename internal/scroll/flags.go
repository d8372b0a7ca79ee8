package scroll

import "github.com/andyrewlee/glide/internal/logging"

// Each setter reports whether the flag changed.

func (c *Controller) setStopped(v bool) bool {
	if c.isStopped == v {
		return false
	}
	c.isStopped = v
	c.flagChanged("stopped", v)
	return true
}

func (c *Controller) setLocked(v bool) bool {
	if c.isLocked == v {
		return false
	}
	c.isLocked = v
	c.flagChanged("locked", v)
	return true
}

func (c *Controller) setSmooth(v bool) bool {
	if c.isSmooth == v {
		return false
	}
	c.isSmooth = v
	c.flagChanged("smooth", v)
	return true
}

func (c *Controller) setScrolling(v bool) bool {
	if c.isScrolling == v {
		return false
	}
	c.isScrolling = v
	c.flagChanged("scrolling", v)
	return true
}

func (c *Controller) flagChanged(name string, v bool) {
	logging.Debug("scroll: %s=%v", name, v)
	c.flags.Emit(EventFlags, c.Flags())
}
