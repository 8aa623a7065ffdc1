package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRide_PassengerList(t *testing.T) {
	ride := &Ride{}

	t.Run("empty column reads as empty list", func(t *testing.T) {
		assert.Empty(t, ride.PassengerList())
	})

	t.Run("set then read", func(t *testing.T) {
		alice := RidePassenger{ID: uuid.New(), Name: "Leyla"}
		bob := RidePassenger{ID: uuid.New(), Name: "Elvin"}
		require.NoError(t, ride.SetPassengerList([]RidePassenger{alice, bob}))

		list := ride.PassengerList()
		require.Len(t, list, 2)
		assert.Equal(t, alice, list[0])
		assert.Equal(t, bob, list[1])

		assert.True(t, ride.HasPassenger(alice.ID))
		assert.True(t, ride.HasPassenger(bob.ID))
		assert.False(t, ride.HasPassenger(uuid.New()))
	})

	t.Run("nil list stores an empty array", func(t *testing.T) {
		require.NoError(t, ride.SetPassengerList(nil))
		assert.Equal(t, "[]", string(ride.Passengers))
		assert.Empty(t, ride.PassengerList())
	})
}

func TestRide_RatingsMap(t *testing.T) {
	ride := &Ride{}

	t.Run("empty column reads as empty map", func(t *testing.T) {
		assert.Empty(t, ride.RatingsMap())
	})

	t.Run("set then read", func(t *testing.T) {
		rater := uuid.New()
		require.NoError(t, ride.SetRatingsMap(map[string]int{rater.String(): 4}))

		ratings := ride.RatingsMap()
		require.Len(t, ratings, 1)
		assert.Equal(t, 4, ratings[rater.String()])
	})

	t.Run("nil map stores an empty object", func(t *testing.T) {
		require.NoError(t, ride.SetRatingsMap(nil))
		assert.Equal(t, "{}", string(ride.PassengerRatings))
	})
}

func TestRide_DriverSnapshot(t *testing.T) {
	ride := &Ride{}
	snapshot := RideDriver{
		ID:           uuid.New(),
		Name:         "Rəşad Həsənov",
		Rating:       4.8,
		Vehicle:      "Mercedes Vito",
		AvatarLetter: "R",
	}

	ride.SetDriver(snapshot)
	assert.Equal(t, snapshot, ride.Driver())
}
